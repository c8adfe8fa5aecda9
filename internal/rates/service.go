package rates

import (
	"context"
	"encoding/json"
	"time"
)

// Snapshot is one cached set of quotes.
type Snapshot struct {
	Base   string             `json:"base"`
	AsOf   time.Time          `json:"as_of"`
	Quotes map[string]float64 `json:"quotes"`
}

type Service struct {
	cache   Cache
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
}

func NewService(cache Cache, fetcher Fetcher, ttl time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{cache: cache, fetcher: fetcher, ttl: ttl, now: now}
}

// Rates returns the quotes for base, serving from cache while the stored
// snapshot is younger than the TTL and refetching otherwise. A fetch
// failure with a stale snapshot on hand surfaces the error; there is no
// stale-serving fallback.
func (s *Service) Rates(ctx context.Context, base string) (*Snapshot, error) {
	key := "rates:" + base

	if raw, ok := s.cache.Get(key); ok {
		var snap Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			if s.now().Sub(snap.AsOf) < s.ttl {
				return &snap, nil
			}
		}
	}

	quotes, err := s.fetcher.Fetch(ctx, base)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{Base: base, AsOf: s.now(), Quotes: quotes}
	if raw, err := json.Marshal(snap); err == nil {
		_ = s.cache.Set(key, string(raw))
	}
	return &snap, nil
}
