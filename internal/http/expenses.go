package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/billing"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

const dateLayout = "2006-01-02"

type expenseInput struct {
	Description   string   `json:"description"`
	Amount        float64  `json:"amount"`
	Currency      string   `json:"currency"`
	PaymentMethod string   `json:"payment_method" binding:"required"`
	CategoryID    uint     `json:"category_id"`
	CreditCardID  *uint    `json:"credit_card_id"`
	PurchaseDate  string   `json:"purchase_date" binding:"required"`
	Installments  *int     `json:"installments"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
}

// cardSnapshot loads the user's card and freezes its cycle config. The
// returned config is a copy; later card edits never reach rows computed
// from it.
func cardSnapshot(userID, cardID uint) (*billing.CycleConfig, error) {
	var card models.CreditCard
	if err := database.DB.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		return nil, err
	}
	return &billing.CycleConfig{
		ClosingDay: card.ClosingDay,
		PaymentDay: card.PaymentDay,
		Mode:       billing.CardMode(card.Mode),
	}, nil
}

// expenseRows validates one submitted purchase and expands it into the
// rows to persist. All date and installment arithmetic goes through the
// billing package; nothing here re-derives due dates.
func (s *Server) expenseRows(userID uint, input expenseInput) ([]models.Expense, int, string) {
	method := billing.PaymentMethod(strings.ToLower(strings.TrimSpace(input.PaymentMethod)))
	if !billing.ValidPaymentMethod(method) {
		return nil, 422, "invalid_payment_method"
	}

	purchase, err := time.Parse(dateLayout, input.PurchaseDate)
	if err != nil {
		return nil, 422, "invalid_purchase_date"
	}

	installments := 1
	if input.Installments != nil {
		installments = *input.Installments
	}
	if installments > 1 && method != billing.PaymentCreditCard {
		return nil, 422, "installments_require_credit_card"
	}

	var cfg *billing.CycleConfig
	if input.CreditCardID != nil {
		cfg, err = cardSnapshot(userID, *input.CreditCardID)
		if err != nil {
			return nil, 404, "card_not_found"
		}
	}

	ev := billing.PurchaseEvent{
		Amount:       decimal.NewFromFloat(input.Amount),
		PurchaseDate: purchase,
		Method:       method,
		Card:         cfg,
		Installments: installments,
	}

	recs, err := billing.ExpandInstallments(ev)
	if err != nil {
		return nil, 422, err.Error()
	}

	currency := input.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	group := ""
	if len(recs) > 1 {
		group = generateGroupID()
	}

	rows := make([]models.Expense, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, models.Expense{
			UserID:        userID,
			CategoryID:    input.CategoryID,
			CreditCardID:  input.CreditCardID,
			Description:   input.Description,
			Amount:        rec.Amount.InexactFloat64(),
			Currency:      currency,
			PaymentMethod: string(method),
			PurchaseDate:  rec.PurchaseDate.Format(dateLayout),
			DueDate:       rec.DueDate.Format(dateLayout),
			Installment:   rec.Sequence,
			Installments:  len(recs),
			Group:         group,
			Tags:          input.Tags,
			Notes:         input.Notes,
		})
	}
	return rows, 0, ""
}

// POST /v1/expenses
func (s *Server) createExpense(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input expenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	rows, status, code := s.expenseRows(userID, input)
	if code != "" {
		c.JSON(status, gin.H{"error": code})
		return
	}

	// All installments land or none do
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if len(rows) == 1 {
		c.JSON(201, rows[0])
		return
	}
	c.JSON(201, gin.H{"installment_group": rows[0].Group, "expenses": rows})
}

// windowFromQuery resolves the reporting window for listing and summary
// endpoints: year+month beats start/end, and with neither the window is
// the trailing three months.
func windowFromQuery(yearStr, monthStr, startStr, endStr string, today time.Time) (billing.Window, string) {
	if yearStr != "" || monthStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return billing.Window{}, "invalid_year"
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return billing.Window{}, "invalid_month"
		}
		return billing.MonthWindow(year, time.Month(month)), ""
	}

	if startStr != "" || endStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return billing.Window{}, "invalid_start_date"
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return billing.Window{}, "invalid_end_date"
		}
		if end.Before(start) {
			return billing.Window{}, "invalid_date_range"
		}
		return billing.RangeWindow(start, end), ""
	}

	return billing.DefaultWindow(today), ""
}

// inWindow parses the row's stored dates and tests its effective date.
func inWindow(e models.Expense, w billing.Window) bool {
	purchase, err := time.Parse(dateLayout, e.PurchaseDate)
	if err != nil {
		return false
	}
	due := purchase
	if e.DueDate != "" {
		if d, err := time.Parse(dateLayout, e.DueDate); err == nil {
			due = d
		}
	}
	return w.MatchesExpense(billing.PaymentMethod(e.PaymentMethod), purchase, due)
}

// GET /v1/expenses
func (s *Server) listExpenses(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	w, code := windowFromQuery(c.Query("year"), c.Query("month"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if code != "" {
		c.JSON(400, gin.H{"error": code})
		return
	}

	query := database.DB.Where("user_id = ?", userID).Order("purchase_date desc, created_at desc")

	// Superset prefilter; the exact per-row date-field test happens below
	start := w.Start.Format(dateLayout)
	end := w.End.Format(dateLayout)
	query = query.Where("(purchase_date BETWEEN ? AND ?) OR (due_date BETWEEN ? AND ?)", start, end, start, end)

	if cat := strings.TrimSpace(c.Query("category_id")); cat != "" {
		query = query.Where("category_id = ?", cat)
	}
	if method := strings.TrimSpace(c.Query("payment_method")); method != "" {
		query = query.Where("payment_method = ?", strings.ToLower(method))
	}
	if card := strings.TrimSpace(c.Query("credit_card_id")); card != "" {
		query = query.Where("credit_card_id = ?", card)
	}
	if minStr := c.Query("min_amount"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			query = query.Where("amount >= ?", min)
		}
	}
	if maxStr := c.Query("max_amount"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			query = query.Where("amount <= ?", max)
		}
	}

	var fetched []models.Expense
	if err := query.Find(&fetched).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	expenses := make([]models.Expense, 0, len(fetched))
	for _, e := range fetched {
		if inWindow(e, w) {
			expenses = append(expenses, e)
		}
	}

	c.JSON(200, expenses)
}

// GET /v1/expenses/:id
func (s *Server) getExpense(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(404, gin.H{"error": "expense_not_found"})
		return
	}

	c.JSON(200, expense)
}

// PUT /v1/expenses/:id
//
// Installment rows edit independently; changing anything the calculator
// depends on re-runs it for this row against a fresh card snapshot,
// keeping the row's place in its installment sequence.
func (s *Server) updateExpense(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var expense models.Expense
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(404, gin.H{"error": "expense_not_found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	recompute := false

	if v, ok := input["description"].(string); ok {
		expense.Description = v
	}
	if v, ok := input["notes"].(string); ok {
		expense.Notes = v
	}
	if v, ok := input["currency"].(string); ok {
		expense.Currency = v
	}
	if v, ok := input["category_id"].(float64); ok {
		expense.CategoryID = uint(v)
	}
	if v, ok := input["amount"].(float64); ok {
		if v <= 0 {
			c.JSON(422, gin.H{"error": billing.ErrInvalidAmount.Error()})
			return
		}
		expense.Amount = v
	}
	if v, ok := input["payment_method"].(string); ok {
		method := billing.PaymentMethod(strings.ToLower(strings.TrimSpace(v)))
		if !billing.ValidPaymentMethod(method) {
			c.JSON(422, gin.H{"error": "invalid_payment_method"})
			return
		}
		expense.PaymentMethod = string(method)
		recompute = true
	}
	if v, ok := input["purchase_date"].(string); ok {
		if _, err := time.Parse(dateLayout, v); err != nil {
			c.JSON(422, gin.H{"error": "invalid_purchase_date"})
			return
		}
		expense.PurchaseDate = v
		recompute = true
	}
	if v, ok := input["credit_card_id"].(float64); ok {
		cardID := uint(v)
		expense.CreditCardID = &cardID
		recompute = true
	}
	if v, ok := input["credit_card_id"]; ok && v == nil {
		expense.CreditCardID = nil
		recompute = true
	}

	if recompute {
		method := billing.PaymentMethod(expense.PaymentMethod)
		if method == billing.PaymentCreditCard && expense.CreditCardID == nil {
			c.JSON(422, gin.H{"error": billing.ErrMissingCardConfig.Error()})
			return
		}
		var cfg *billing.CycleConfig
		if expense.CreditCardID != nil {
			cfg, err = cardSnapshot(userID, *expense.CreditCardID)
			if err != nil {
				c.JSON(404, gin.H{"error": "card_not_found"})
				return
			}
		}
		purchase, _ := time.Parse(dateLayout, expense.PurchaseDate)
		due := billing.ComputeDueDate(purchase, cfg, method).AddDate(0, expense.Installment-1, 0)
		expense.DueDate = due.Format(dateLayout)
	}

	if err := database.DB.Save(&expense).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, expense)
}

// DELETE /v1/expenses/:id
func (s *Server) deleteExpense(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "expense deleted"})
}
