package http

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/billing"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

type CategoryTotal struct {
	CategoryID uint    `json:"category_id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

type MethodTotal struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
}

type MonthTotal struct {
	Month    string  `json:"month"` // 2006-01
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type SummaryResponse struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	IncomeTotal float64         `json:"income_total"`
	SpentTotal  float64         `json:"spent_total"`
	Balance     float64         `json:"balance"`
	ByCategory  []CategoryTotal `json:"by_category"`
	ByMethod    []MethodTotal   `json:"by_method"`
	ByMonth     []MonthTotal    `json:"by_month"`
}

// GET /v1/summary
//
// Expenses bucket by their effective date (credit card rows under the
// statement month they are due in, everything else under the purchase
// month), so a January purchase in installments shows up spread across
// the following statements, matching what the card actually bills.
func (s *Server) getSummary(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	w, code := windowFromQuery(c.Query("year"), c.Query("month"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if code != "" {
		c.JSON(400, gin.H{"error": code})
		return
	}

	start := w.Start.Format(dateLayout)
	end := w.End.Format(dateLayout)

	var expenses []models.Expense
	if err := database.DB.Where("user_id = ?", userID).
		Where("(purchase_date BETWEEN ? AND ?) OR (due_date BETWEEN ? AND ?)", start, end, start, end).
		Find(&expenses).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	var incomes []models.Income
	if err := database.DB.Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&incomes).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	var categories []models.Category
	if err := database.DB.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	catByID := make(map[uint]models.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.ID] = cat
	}

	spent := decimal.Zero
	earned := decimal.Zero
	catSpend := make(map[uint]decimal.Decimal)
	methodSpend := make(map[string]decimal.Decimal)
	monthIncome := make(map[string]decimal.Decimal)
	monthSpend := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if !inWindow(e, w) {
			continue
		}
		amt := decimal.NewFromFloat(e.Amount)
		spent = spent.Add(amt)
		catSpend[e.CategoryID] = catSpend[e.CategoryID].Add(amt)
		methodSpend[e.PaymentMethod] = methodSpend[e.PaymentMethod].Add(amt)

		effective, err := time.Parse(dateLayout, e.PurchaseDate)
		if err != nil {
			continue
		}
		if due, derr := time.Parse(dateLayout, e.DueDate); derr == nil {
			effective = billing.EffectiveDate(billing.PaymentMethod(e.PaymentMethod), effective, due)
		}
		key := effective.Format("2006-01")
		monthSpend[key] = monthSpend[key].Add(amt)
	}

	for _, in := range incomes {
		amt := decimal.NewFromFloat(in.Amount)
		earned = earned.Add(amt)
		if d, err := time.Parse(dateLayout, in.Date); err == nil {
			key := d.Format("2006-01")
			monthIncome[key] = monthIncome[key].Add(amt)
		}
	}

	res := SummaryResponse{
		Start:       start,
		End:         end,
		IncomeTotal: earned.InexactFloat64(),
		SpentTotal:  spent.InexactFloat64(),
		Balance:     earned.Sub(spent).InexactFloat64(),
		ByCategory:  []CategoryTotal{},
		ByMethod:    []MethodTotal{},
		ByMonth:     []MonthTotal{},
	}

	for id, amt := range catSpend {
		ct := CategoryTotal{CategoryID: id, Total: amt.InexactFloat64()}
		if cat, ok := catByID[id]; ok {
			ct.Name = cat.Name
			ct.Kind = cat.Kind
		}
		if spent.IsPositive() {
			ct.Percentage = amt.Div(spent).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		res.ByCategory = append(res.ByCategory, ct)
	}
	sort.Slice(res.ByCategory, func(i, j int) bool {
		return res.ByCategory[i].Total > res.ByCategory[j].Total
	})

	for method, amt := range methodSpend {
		res.ByMethod = append(res.ByMethod, MethodTotal{Method: method, Total: amt.InexactFloat64()})
	}
	sort.Slice(res.ByMethod, func(i, j int) bool {
		return res.ByMethod[i].Total > res.ByMethod[j].Total
	})

	months := make(map[string]struct{})
	for m := range monthIncome {
		months[m] = struct{}{}
	}
	for m := range monthSpend {
		months[m] = struct{}{}
	}
	for m := range months {
		res.ByMonth = append(res.ByMonth, MonthTotal{
			Month:    m,
			Income:   monthIncome[m].InexactFloat64(),
			Expenses: monthSpend[m].InexactFloat64(),
		})
	}
	sort.Slice(res.ByMonth, func(i, j int) bool {
		return res.ByMonth[i].Month < res.ByMonth[j].Month
	})

	c.JSON(200, res)
}
