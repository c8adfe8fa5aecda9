package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

type incomeInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CategoryID  uint    `json:"category_id"`
	Date        string  `json:"date" binding:"required"`
}

// POST /v1/incomes
func (s *Server) createIncome(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input incomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(422, gin.H{"error": "amount must be greater than zero"})
		return
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		c.JSON(422, gin.H{"error": "invalid_date"})
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	income := models.Income{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    currency,
		Date:        input.Date,
	}

	if err := database.DB.Create(&income).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, income)
}

// GET /v1/incomes
func (s *Server) listIncomes(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	w, code := windowFromQuery(c.Query("year"), c.Query("month"), c.Query("start_date"), c.Query("end_date"), time.Now())
	if code != "" {
		c.JSON(400, gin.H{"error": code})
		return
	}

	query := database.DB.Where("user_id = ?", userID).
		Where("date BETWEEN ? AND ?", w.Start.Format(dateLayout), w.End.Format(dateLayout)).
		Order("date desc, created_at desc")

	if cat := strings.TrimSpace(c.Query("category_id")); cat != "" {
		query = query.Where("category_id = ?", cat)
	}

	var incomes []models.Income
	if err := query.Find(&incomes).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, incomes)
}

// GET /v1/incomes/:id
func (s *Server) getIncome(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		c.JSON(404, gin.H{"error": "income_not_found"})
		return
	}

	c.JSON(200, income)
}

// PUT /v1/incomes/:id
func (s *Server) updateIncome(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var income models.Income
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&income).Error; err != nil {
		c.JSON(404, gin.H{"error": "income_not_found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["description"].(string); ok {
		income.Description = v
	}
	if v, ok := input["currency"].(string); ok {
		income.Currency = v
	}
	if v, ok := input["category_id"].(float64); ok {
		income.CategoryID = uint(v)
	}
	if v, ok := input["amount"].(float64); ok {
		if v <= 0 {
			c.JSON(422, gin.H{"error": "amount must be greater than zero"})
			return
		}
		income.Amount = v
	}
	if v, ok := input["date"].(string); ok {
		if _, err := time.Parse(dateLayout, v); err != nil {
			c.JSON(422, gin.H{"error": "invalid_date"})
			return
		}
		income.Date = v
	}

	if err := database.DB.Save(&income).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, income)
}

// DELETE /v1/incomes/:id
func (s *Server) deleteIncome(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "income deleted"})
}
