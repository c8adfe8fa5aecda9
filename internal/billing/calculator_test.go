package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDueDate_NoDeferral(t *testing.T) {
	cfg := &CycleConfig{ClosingDay: 15, PaymentDay: 10, Mode: CardModeCredit}
	dates := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 29),
		date(2024, time.December, 31),
	}

	for _, d := range dates {
		assert.Equal(t, d, ComputeDueDate(d, nil, PaymentCreditCard), "nil config must not defer")
		assert.Equal(t, d, ComputeDueDate(d, cfg, PaymentCash), "cash must not defer")
		debitCfg := &CycleConfig{ClosingDay: 15, PaymentDay: 10, Mode: CardModeDebit}
		assert.Equal(t, d, ComputeDueDate(d, debitCfg, PaymentDebitCard), "debit-mode card must not defer")
	}
}

func TestComputeDueDate_CreditCard(t *testing.T) {
	tests := []struct {
		name     string
		purchase time.Time
		cfg      CycleConfig
		method   PaymentMethod
		want     time.Time
	}{
		{
			name:     "before close goes to next month",
			purchase: date(2024, time.January, 10),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 10},
			want:     date(2024, time.February, 10),
		},
		{
			name:     "after close skips a cycle",
			purchase: date(2024, time.January, 20),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 10},
			want:     date(2024, time.March, 10),
		},
		{
			name:     "on the closing day belongs to the next statement",
			purchase: date(2024, time.January, 15),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 10},
			want:     date(2024, time.March, 10),
		},
		{
			name:     "first of month with month-end close",
			purchase: date(2024, time.January, 1),
			cfg:      CycleConfig{ClosingDay: 31, PaymentDay: 10},
			want:     date(2024, time.February, 10),
		},
		{
			name:     "last of month with month-end close lands one month later",
			purchase: date(2024, time.January, 31),
			cfg:      CycleConfig{ClosingDay: 31, PaymentDay: 10},
			want:     date(2024, time.March, 10),
		},
		{
			name:     "closing day clamped in a short february",
			purchase: date(2023, time.February, 28),
			cfg:      CycleConfig{ClosingDay: 31, PaymentDay: 10},
			want:     date(2023, time.April, 10),
		},
		{
			name:     "year rollover",
			purchase: date(2024, time.December, 20),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 10},
			want:     date(2025, time.February, 10),
		},
		{
			name:     "payment day clamped to short target month",
			purchase: date(2024, time.January, 10),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 31},
			want:     date(2024, time.February, 29),
		},
		{
			name:     "zero-value config falls back to 31/10",
			purchase: date(2024, time.March, 10),
			cfg:      CycleConfig{},
			want:     date(2024, time.April, 10),
		},
		{
			name:     "debit card in credit mode defers like credit",
			purchase: date(2024, time.January, 20),
			cfg:      CycleConfig{ClosingDay: 15, PaymentDay: 10, Mode: CardModeCredit},
			method:   PaymentDebitCard,
			want:     date(2024, time.March, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			method := tt.method
			if method == "" {
				method = PaymentCreditCard
			}
			got := ComputeDueDate(tt.purchase, &cfg, method)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDueDate_ConsistentCycleShift(t *testing.T) {
	// For a month-end close, a purchase on the 1st must land exactly one
	// calendar month before a purchase on the 31st of the same month.
	cfg := &CycleConfig{ClosingDay: 31, PaymentDay: 10}

	early := ComputeDueDate(date(2024, time.May, 1), cfg, PaymentCreditCard)
	late := ComputeDueDate(date(2024, time.May, 31), cfg, PaymentCreditCard)
	assert.Equal(t, early.AddDate(0, 1, 0), late)
}

func TestExpandInstallments_Single(t *testing.T) {
	cfg := &CycleConfig{ClosingDay: 15, PaymentDay: 10}
	ev := PurchaseEvent{
		Amount:       decimal.NewFromFloat(1500),
		PurchaseDate: date(2024, time.January, 20),
		Method:       PaymentCreditCard,
		Card:         cfg,
		Installments: 1,
	}

	got, err := ExpandInstallments(ev)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 1, got[0].Sequence)
	assert.Equal(t, ev.PurchaseDate, got[0].PurchaseDate)
	assert.Equal(t, ComputeDueDate(ev.PurchaseDate, cfg, PaymentCreditCard), got[0].DueDate)
	assert.True(t, got[0].Amount.Equal(ev.Amount))
}

func TestExpandInstallments_RoundingArtifact(t *testing.T) {
	// 100000 over 3: three times 33333.33, one cent short of the total.
	// The shortfall is deliberate; no remainder redistribution happens.
	ev := PurchaseEvent{
		Amount:       decimal.NewFromInt(100000),
		PurchaseDate: date(2024, time.January, 10),
		Method:       PaymentCreditCard,
		Card:         &CycleConfig{ClosingDay: 15, PaymentDay: 10},
		Installments: 3,
	}

	got, err := ExpandInstallments(ev)
	require.NoError(t, err)
	require.Len(t, got, 3)

	sum := decimal.Zero
	for _, inst := range got {
		assert.True(t, inst.Amount.Equal(decimal.RequireFromString("33333.33")),
			"installment %d: got %s", inst.Sequence, inst.Amount)
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("99999.99")), "sum: got %s", sum)
}

func TestExpandInstallments_MonthlyStepping(t *testing.T) {
	ev := PurchaseEvent{
		Amount:       decimal.NewFromInt(1200),
		PurchaseDate: date(2024, time.January, 10),
		Method:       PaymentCreditCard,
		Card:         &CycleConfig{ClosingDay: 15, PaymentDay: 10},
		Installments: 12,
	}

	got, err := ExpandInstallments(ev)
	require.NoError(t, err)
	require.Len(t, got, 12)

	for i, inst := range got {
		assert.Equal(t, i+1, inst.Sequence)
		assert.Equal(t, ev.PurchaseDate, inst.PurchaseDate, "purchase date must not change across installments")
		if i > 0 {
			assert.Equal(t, got[i-1].DueDate.AddDate(0, 1, 0), inst.DueDate)
		}
	}
	assert.Equal(t, date(2024, time.February, 10), got[0].DueDate)
	assert.Equal(t, date(2025, time.January, 10), got[11].DueDate)
}

func TestExpandInstallments_DayOverflowNormalizes(t *testing.T) {
	// Base due date Jan 31; the second installment steps through a
	// nonexistent Feb 31 and normalizes to Mar 3 (non-leap year).
	ev := PurchaseEvent{
		Amount:       decimal.NewFromInt(300),
		PurchaseDate: date(2024, time.December, 10),
		Method:       PaymentCreditCard,
		Card:         &CycleConfig{ClosingDay: 15, PaymentDay: 31},
		Installments: 2,
	}

	got, err := ExpandInstallments(ev)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, date(2025, time.January, 31), got[0].DueDate)
	assert.Equal(t, date(2025, time.March, 3), got[1].DueDate)
}

func TestExpandInstallments_Rejections(t *testing.T) {
	base := PurchaseEvent{
		Amount:       decimal.NewFromInt(100),
		PurchaseDate: date(2024, time.January, 10),
		Method:       PaymentCreditCard,
		Card:         &CycleConfig{ClosingDay: 15, PaymentDay: 10},
		Installments: 1,
	}

	tests := []struct {
		name    string
		mutate  func(*PurchaseEvent)
		wantErr error
	}{
		{"zero installments", func(ev *PurchaseEvent) { ev.Installments = 0 }, ErrInvalidInstallmentCount},
		{"negative installments", func(ev *PurchaseEvent) { ev.Installments = -1 }, ErrInvalidInstallmentCount},
		{"too many installments", func(ev *PurchaseEvent) { ev.Installments = 61 }, ErrInvalidInstallmentCount},
		{"zero amount", func(ev *PurchaseEvent) { ev.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(ev *PurchaseEvent) { ev.Amount = decimal.NewFromInt(-5) }, ErrInvalidAmount},
		{"credit card without config", func(ev *PurchaseEvent) { ev.Card = nil }, ErrMissingCardConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := base
			tt.mutate(&ev)
			got, err := ExpandInstallments(ev)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Cap is inclusive on both ends.
	ev := base
	ev.Installments = MaxInstallments
	got, err := ExpandInstallments(ev)
	require.NoError(t, err)
	assert.Len(t, got, MaxInstallments)
}

func TestCycleConfig_Validate(t *testing.T) {
	assert.NoError(t, CycleConfig{ClosingDay: 1, PaymentDay: 31}.Validate())
	assert.ErrorIs(t, CycleConfig{ClosingDay: 0, PaymentDay: 10}.Validate(), ErrInvalidCycleDay)
	assert.ErrorIs(t, CycleConfig{ClosingDay: 32, PaymentDay: 10}.Validate(), ErrInvalidCycleDay)
	assert.ErrorIs(t, CycleConfig{ClosingDay: 15, PaymentDay: 0}.Validate(), ErrInvalidCycleDay)
	assert.ErrorIs(t, CycleConfig{ClosingDay: 15, PaymentDay: 40}.Validate(), ErrInvalidCycleDay)
}
