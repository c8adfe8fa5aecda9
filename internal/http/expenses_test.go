package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/billing"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/config"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

func testServer() *Server {
	return &Server{cfg: &config.Config{DefaultCurrency: "ARS"}}
}

func intPtr(i int) *int { return &i }

func TestWindowFromQuery(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name                     string
		year, month, start, end  string
		wantStart, wantEnd, code string
	}{
		{
			name: "month window",
			year: "2024", month: "2",
			wantStart: "2024-02-01", wantEnd: "2024-02-29",
		},
		{
			name:  "explicit range",
			start: "2024-01-15", end: "2024-03-10",
			wantStart: "2024-01-15", wantEnd: "2024-03-10",
		},
		{
			name:      "default trailing three months",
			wantStart: "2024-03-15", wantEnd: "2024-06-15",
		},
		{
			name: "month without year",
			year: "", month: "2",
			code: "invalid_year",
		},
		{
			name: "month out of range",
			year: "2024", month: "13",
			code: "invalid_month",
		},
		{
			name:  "range missing end",
			start: "2024-01-15",
			code:  "invalid_end_date",
		},
		{
			name:  "inverted range",
			start: "2024-03-10", end: "2024-01-15",
			code: "invalid_date_range",
		},
		{
			name:  "malformed date",
			start: "15/01/2024", end: "2024-03-10",
			code: "invalid_start_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, code := windowFromQuery(tt.year, tt.month, tt.start, tt.end, today)
			assert.Equal(t, tt.code, code)
			if tt.code == "" {
				assert.Equal(t, tt.wantStart, w.Start.Format(dateLayout))
				assert.Equal(t, tt.wantEnd, w.End.Format(dateLayout))
			}
		})
	}
}

func TestExpenseRows_CashSingleRow(t *testing.T) {
	s := testServer()

	rows, status, code := s.expenseRows(1, expenseInput{
		Description:   "groceries",
		Amount:        120.50,
		PaymentMethod: "cash",
		PurchaseDate:  "2024-01-20",
	})
	require.Empty(t, code, "status %d", status)
	require.Len(t, rows, 1)

	assert.Equal(t, "2024-01-20", rows[0].PurchaseDate)
	assert.Equal(t, "2024-01-20", rows[0].DueDate, "cash is due on the purchase date")
	assert.Equal(t, 1, rows[0].Installment)
	assert.Equal(t, 1, rows[0].Installments)
	assert.Empty(t, rows[0].Group)
	assert.Equal(t, "ARS", rows[0].Currency, "default currency applied")
	assert.InDelta(t, 120.50, rows[0].Amount, 0.001)
}

func TestExpenseRows_Rejections(t *testing.T) {
	s := testServer()

	base := expenseInput{
		Amount:        100,
		PaymentMethod: "cash",
		PurchaseDate:  "2024-01-20",
	}

	tests := []struct {
		name       string
		mutate     func(*expenseInput)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown payment method",
			mutate:     func(in *expenseInput) { in.PaymentMethod = "cheque" },
			wantStatus: 422,
			wantCode:   "invalid_payment_method",
		},
		{
			name:       "malformed purchase date",
			mutate:     func(in *expenseInput) { in.PurchaseDate = "20-01-2024" },
			wantStatus: 422,
			wantCode:   "invalid_purchase_date",
		},
		{
			name:       "installments on a cash purchase",
			mutate:     func(in *expenseInput) { in.Installments = intPtr(3) },
			wantStatus: 422,
			wantCode:   "installments_require_credit_card",
		},
		{
			name:       "credit card without card id",
			mutate:     func(in *expenseInput) { in.PaymentMethod = "credit_card" },
			wantStatus: 422,
			wantCode:   billing.ErrMissingCardConfig.Error(),
		},
		{
			name:       "zero amount",
			mutate:     func(in *expenseInput) { in.Amount = 0 },
			wantStatus: 422,
			wantCode:   billing.ErrInvalidAmount.Error(),
		},
		{
			name:       "explicit zero installments",
			mutate:     func(in *expenseInput) { in.Installments = intPtr(0) },
			wantStatus: 422,
			wantCode:   billing.ErrInvalidInstallmentCount.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			rows, status, code := s.expenseRows(1, input)
			assert.Nil(t, rows)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestInWindow_SelectsDateFieldByMethod(t *testing.T) {
	feb := billing.MonthWindow(2024, time.February)

	credit := models.Expense{
		PaymentMethod: "credit_card",
		PurchaseDate:  "2024-01-20",
		DueDate:       "2024-02-10",
	}
	cash := models.Expense{
		PaymentMethod: "cash",
		PurchaseDate:  "2024-01-20",
		DueDate:       "2024-01-20",
	}

	assert.True(t, inWindow(credit, feb))
	assert.False(t, inWindow(cash, feb))

	jan := billing.MonthWindow(2024, time.January)
	assert.False(t, inWindow(credit, jan))
	assert.True(t, inWindow(cash, jan))
}
