// Package billing holds the credit-card cycle math: mapping a purchase
// date and a card's closing/payment days to a statement due date,
// expanding a purchase into installments, and deciding which reporting
// window a record falls into. Everything here is pure; persistence and
// HTTP validation live with the callers.
package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentDebitCard, PaymentCreditCard:
		return true
	}
	return false
}

type CardMode string

const (
	CardModeCredit CardMode = "credit"
	CardModeDebit  CardMode = "debit"
)

const (
	DefaultClosingDay = 31
	DefaultPaymentDay = 10
	MaxInstallments   = 60
)

var (
	ErrInvalidInstallmentCount = errors.New("installments must be between 1 and 60")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrMissingCardConfig       = errors.New("credit card purchases require a card cycle config")
	ErrInvalidCycleDay         = errors.New("closing day and payment day must be between 1 and 31")
)

// CycleConfig is the snapshot of a card's billing configuration taken at
// calculation time. Later edits to the card never touch records that were
// computed from an earlier snapshot.
type CycleConfig struct {
	ClosingDay int
	PaymentDay int
	Mode       CardMode
}

// Validate is meant for configuration-write time; the calculator assumes
// it already ran.
func (c CycleConfig) Validate() error {
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidCycleDay
	}
	if c.PaymentDay < 1 || c.PaymentDay > 31 {
		return ErrInvalidCycleDay
	}
	return nil
}

func (c CycleConfig) withDefaults() CycleConfig {
	if c.ClosingDay == 0 {
		c.ClosingDay = DefaultClosingDay
	}
	if c.PaymentDay == 0 {
		c.PaymentDay = DefaultPaymentDay
	}
	if c.Mode == "" {
		c.Mode = CardModeCredit
	}
	return c
}

// defersPayment reports whether a purchase settles on a statement rather
// than on its own date. Debit cards defer only when the card is
// explicitly configured in credit mode.
func defersPayment(method PaymentMethod, cfg *CycleConfig) bool {
	if cfg == nil {
		return false
	}
	switch method {
	case PaymentCreditCard:
		return true
	case PaymentDebitCard:
		return cfg.Mode == CardModeCredit
	}
	return false
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ComputeDueDate maps a purchase date to the date its statement is due.
//
// Rule (the single source of truth, shared by every call site): the
// configured closing day is clamped to the purchase month's length; a
// purchase on or after that day belongs to the next statement, so its
// payment month is purchase month + 2, otherwise + 1. The payment day is
// the configured day clamped to the target month's length. Cash
// purchases, plain debit purchases and purchases without a card config
// are due on the purchase date itself.
func ComputeDueDate(purchase time.Time, cfg *CycleConfig, method PaymentMethod) time.Time {
	if !defersPayment(method, cfg) {
		return purchase
	}
	c := cfg.withDefaults()

	closing := c.ClosingDay
	if dim := daysInMonth(purchase.Year(), purchase.Month()); closing > dim {
		closing = dim
	}

	offset := 1
	if purchase.Day() >= closing {
		offset = 2
	}

	// time.Date normalizes month 13+ into the next year
	first := time.Date(purchase.Year(), purchase.Month()+time.Month(offset), 1, 0, 0, 0, 0, purchase.Location())
	day := c.PaymentDay
	if dim := daysInMonth(first.Year(), first.Month()); day > dim {
		day = dim
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, purchase.Location())
}

// PurchaseEvent is a single submitted purchase, before expansion.
type PurchaseEvent struct {
	Amount       decimal.Decimal
	PurchaseDate time.Time
	Method       PaymentMethod
	Card         *CycleConfig
	Installments int
}

// Validate rejects malformed events before any calculation runs. Counts
// outside [1,60] are an error, never clamped.
func (ev PurchaseEvent) Validate() error {
	if ev.Installments < 1 || ev.Installments > MaxInstallments {
		return ErrInvalidInstallmentCount
	}
	if !ev.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if ev.Method == PaymentCreditCard && ev.Card == nil {
		return ErrMissingCardConfig
	}
	return nil
}

// Installment is one persisted-to-be row of an expanded purchase.
type Installment struct {
	Sequence     int
	PurchaseDate time.Time
	DueDate      time.Time
	Amount       decimal.Decimal
}

// ExpandInstallments splits a purchase into its dated installments.
//
// The per-installment amount is total/n rounded half away from zero to
// two decimals; no cent is redistributed, so the sum of the parts can
// miss the total by up to n/2 cents (100000 over 3 gives three times
// 33333.33, one cent short).
//
// Installment i is due i-1 calendar months after the first one via
// time.Time.AddDate, which normalizes a day past the end of the shifted
// month into the following month (a Jan 31 base due date steps to
// Mar 3 in a 28-day February) rather than clamping.
func ExpandInstallments(ev PurchaseEvent) ([]Installment, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	per := ev.Amount.Div(decimal.NewFromInt(int64(ev.Installments))).Round(2)
	base := ComputeDueDate(ev.PurchaseDate, ev.Card, ev.Method)

	out := make([]Installment, 0, ev.Installments)
	for i := 1; i <= ev.Installments; i++ {
		out = append(out, Installment{
			Sequence:     i,
			PurchaseDate: ev.PurchaseDate,
			DueDate:      base.AddDate(0, i-1, 0),
			Amount:       per,
		})
	}
	return out, nil
}
