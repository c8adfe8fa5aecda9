package http

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

// Auth Response Wrapper
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func generateGroupID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

var seedCategories = []models.Category{
	{Name: "Groceries", Kind: "expense", Color: "#4caf50"},
	{Name: "Transport", Kind: "expense", Color: "#2196f3"},
	{Name: "Housing", Kind: "expense", Color: "#9c27b0"},
	{Name: "Services", Kind: "expense", Color: "#ff9800"},
	{Name: "Leisure", Kind: "expense", Color: "#e91e63"},
	{Name: "Health", Kind: "expense", Color: "#00bcd4"},
	{Name: "Other", Kind: "expense", Color: "#9e9e9e"},
	{Name: "Salary", Kind: "income", Color: "#8bc34a"},
	{Name: "Freelance", Kind: "income", Color: "#cddc39"},
	{Name: "Other", Kind: "income", Color: "#9e9e9e"},
}

// POST /v1/auth/register
func (s *Server) authRegister(c *gin.Context) {
	var input struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(409, gin.H{"error": "user_already_exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "encryption_failed"})
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(500, gin.H{"error": "db_error"})
		return
	}

	// Starter categories so a fresh account is usable immediately
	for _, cat := range seedCategories {
		cat.UserID = user.ID
		if err := database.DB.Create(&cat).Error; err != nil {
			c.JSON(500, gin.H{"error": "db_error"})
			return
		}
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		c.JSON(500, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(201, AuthResponse{Token: token, User: &user})
}

// POST /v1/auth/login
func (s *Server) authLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(401, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		c.JSON(500, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(200, AuthResponse{Token: token, User: &user})
}
