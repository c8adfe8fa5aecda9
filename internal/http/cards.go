package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/billing"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

type cardInput struct {
	Name        string  `json:"name" binding:"required"`
	Provider    string  `json:"provider"`
	LastFour    string  `json:"last_four"`
	Mode        string  `json:"mode"`
	ClosingDay  int     `json:"closing_day"`
	PaymentDay  int     `json:"payment_day"`
	CreditLimit float64 `json:"credit_limit"`
}

// Cycle days are checked when the card is written, never at calculation
// time.
func validateCard(input *cardInput) string {
	if input.Mode == "" {
		input.Mode = string(billing.CardModeCredit)
	}
	mode := billing.CardMode(strings.ToLower(input.Mode))
	if mode != billing.CardModeCredit && mode != billing.CardModeDebit {
		return "invalid_card_mode"
	}
	input.Mode = string(mode)

	if input.ClosingDay == 0 {
		input.ClosingDay = billing.DefaultClosingDay
	}
	if input.PaymentDay == 0 {
		input.PaymentDay = billing.DefaultPaymentDay
	}
	cfg := billing.CycleConfig{ClosingDay: input.ClosingDay, PaymentDay: input.PaymentDay}
	if err := cfg.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// GET /v1/cards
func (s *Server) listCards(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var cards []models.CreditCard
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&cards).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, cards)
}

// POST /v1/cards
func (s *Server) createCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input cardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if code := validateCard(&input); code != "" {
		c.JSON(422, gin.H{"error": code})
		return
	}

	card := models.CreditCard{
		UserID:      userID,
		Name:        input.Name,
		Provider:    input.Provider,
		LastFour:    input.LastFour,
		Mode:        input.Mode,
		ClosingDay:  input.ClosingDay,
		PaymentDay:  input.PaymentDay,
		CreditLimit: input.CreditLimit,
	}

	if err := database.DB.Create(&card).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, card)
}

// PUT /v1/cards/:id
//
// Existing expense rows keep the due dates computed from the old cycle
// config; only purchases created after this edit see the new days.
func (s *Server) updateCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var card models.CreditCard
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		c.JSON(404, gin.H{"error": "card_not_found"})
		return
	}

	input := cardInput{
		Name:        card.Name,
		Provider:    card.Provider,
		LastFour:    card.LastFour,
		Mode:        card.Mode,
		ClosingDay:  card.ClosingDay,
		PaymentDay:  card.PaymentDay,
		CreditLimit: card.CreditLimit,
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if code := validateCard(&input); code != "" {
		c.JSON(422, gin.H{"error": code})
		return
	}

	card.Name = input.Name
	card.Provider = input.Provider
	card.LastFour = input.LastFour
	card.Mode = input.Mode
	card.ClosingDay = input.ClosingDay
	card.PaymentDay = input.PaymentDay
	card.CreditLimit = input.CreditLimit

	if err := database.DB.Save(&card).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, card)
}

// DELETE /v1/cards/:id
func (s *Server) deleteCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CreditCard{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "card deleted"})
}
