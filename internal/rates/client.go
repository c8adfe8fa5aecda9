package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/config"
)

// Fetcher retrieves fresh quotes for a base currency.
type Fetcher interface {
	Fetch(ctx context.Context, base string) (map[string]float64, error)
}

type Client struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{}}
}

func (c *Client) Fetch(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/latest/%s", c.cfg.RatesBaseURL, base)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rates error: %s", string(b))
	}

	var out struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Result != "" && out.Result != "success" {
		return nil, fmt.Errorf("rates error: result=%s", out.Result)
	}
	if len(out.Rates) == 0 {
		return nil, fmt.Errorf("rates error: empty response")
	}
	return out.Rates, nil
}
