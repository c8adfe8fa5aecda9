package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

type categoryInput struct {
	Name  string `json:"name" binding:"required"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

// GET /v1/categories
func (s *Server) listCategories(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := database.DB.Where("user_id = ?", userID).Order("name asc")
	if kind := strings.TrimSpace(c.Query("kind")); kind != "" {
		query = query.Where("kind = ?", strings.ToLower(kind))
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, categories)
}

// POST /v1/categories
func (s *Server) createCategory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	kind := strings.ToLower(input.Kind)
	if kind == "" {
		kind = "expense"
	}
	if kind != "expense" && kind != "income" {
		c.JSON(422, gin.H{"error": "invalid_category_kind"})
		return
	}

	var existing models.Category
	if err := database.DB.Where("user_id = ? AND name = ? AND kind = ?", userID, input.Name, kind).First(&existing).Error; err == nil {
		c.JSON(409, gin.H{"error": "category_already_exists"})
		return
	}

	category := models.Category{
		UserID: userID,
		Name:   input.Name,
		Kind:   kind,
		Color:  input.Color,
	}

	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, category)
}

// PUT /v1/categories/:id
func (s *Server) updateCategory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		c.JSON(404, gin.H{"error": "category_not_found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["name"].(string); ok && strings.TrimSpace(v) != "" {
		category.Name = v
	}
	if v, ok := input["color"].(string); ok {
		category.Color = v
	}

	if err := database.DB.Save(&category).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, category)
}

// DELETE /v1/categories/:id
func (s *Server) deleteCategory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_id"})
		return
	}

	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "category deleted"})
}
