package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

type assetInput struct {
	Name         string  `json:"name" binding:"required"`
	Kind         string  `json:"kind"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unit_cost"`
	Currency     string  `json:"currency"`
	PurchaseDate string  `json:"purchase_date"`
	Notes        string  `json:"notes"`
}

// GET /v1/assets
func (s *Server) listAssets(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var assets []models.Asset
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&assets).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, assets)
}

// POST /v1/assets
func (s *Server) createAsset(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input assetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(422, gin.H{"error": "quantity must be greater than zero"})
		return
	}
	if input.PurchaseDate != "" {
		if _, err := time.Parse(dateLayout, input.PurchaseDate); err != nil {
			c.JSON(422, gin.H{"error": "invalid_purchase_date"})
			return
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	asset := models.Asset{
		UserID:       userID,
		Name:         input.Name,
		Kind:         input.Kind,
		Symbol:       input.Symbol,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		Currency:     currency,
		PurchaseDate: input.PurchaseDate,
		Notes:        input.Notes,
	}

	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, asset)
}

// PUT /v1/assets/:id
func (s *Server) updateAsset(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var asset models.Asset
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&asset).Error; err != nil {
		c.JSON(404, gin.H{"error": "asset_not_found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["name"].(string); ok {
		asset.Name = v
	}
	if v, ok := input["kind"].(string); ok {
		asset.Kind = v
	}
	if v, ok := input["symbol"].(string); ok {
		asset.Symbol = v
	}
	if v, ok := input["notes"].(string); ok {
		asset.Notes = v
	}
	if v, ok := input["currency"].(string); ok {
		asset.Currency = v
	}
	if v, ok := input["quantity"].(float64); ok {
		if v <= 0 {
			c.JSON(422, gin.H{"error": "quantity must be greater than zero"})
			return
		}
		asset.Quantity = v
	}
	if v, ok := input["unit_cost"].(float64); ok {
		asset.UnitCost = v
	}
	if v, ok := input["purchase_date"].(string); ok {
		if _, err := time.Parse(dateLayout, v); err != nil {
			c.JSON(422, gin.H{"error": "invalid_purchase_date"})
			return
		}
		asset.PurchaseDate = v
	}

	if err := database.DB.Save(&asset).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, asset)
}

// DELETE /v1/assets/:id
func (s *Server) deleteAsset(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Asset{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "asset deleted"})
}
