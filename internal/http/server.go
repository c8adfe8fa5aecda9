package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/auth"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/config"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/rates"
)

type Server struct {
	cfg          *config.Config
	tokens       *auth.Manager
	importSchema *gojsonschema.Schema
	rates        *rates.Service
}

func NewServer(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(importSchemaJSON))
	if err != nil {
		panic(err)
	}

	var cache rates.Cache = rates.NewMemoryCache()
	if cfg.RedisAddr != "" {
		cache = rates.NewRedisCache(cfg.RedisAddr)
	}
	rateSvc := rates.NewService(
		cache,
		rates.NewClient(cfg),
		time.Duration(cfg.RatesTTLMinutes)*time.Minute,
		time.Now,
	)

	s := &Server{
		cfg:          cfg,
		tokens:       auth.NewManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		importSchema: schema,
		rates:        rateSvc,
	}

	// Auth
	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	// Protected Routes (User Token)
	authorized := r.Group("/v1")
	authorized.Use(AuthMiddleware(s.tokens))
	{
		authorized.GET("/cards", s.listCards)
		authorized.POST("/cards", s.createCard)
		authorized.PUT("/cards/:id", s.updateCard)
		authorized.DELETE("/cards/:id", s.deleteCard)

		authorized.GET("/categories", s.listCategories)
		authorized.POST("/categories", s.createCategory)
		authorized.PUT("/categories/:id", s.updateCategory)
		authorized.DELETE("/categories/:id", s.deleteCategory)

		authorized.POST("/expenses", s.createExpense)
		authorized.GET("/expenses", s.listExpenses)
		authorized.GET("/expenses/:id", s.getExpense)
		authorized.PUT("/expenses/:id", s.updateExpense)
		authorized.DELETE("/expenses/:id", s.deleteExpense)
		authorized.POST("/expenses/import", s.importExpenses)

		authorized.POST("/incomes", s.createIncome)
		authorized.GET("/incomes", s.listIncomes)
		authorized.GET("/incomes/:id", s.getIncome)
		authorized.PUT("/incomes/:id", s.updateIncome)
		authorized.DELETE("/incomes/:id", s.deleteIncome)

		authorized.GET("/assets", s.listAssets)
		authorized.POST("/assets", s.createAsset)
		authorized.PUT("/assets/:id", s.updateAsset)
		authorized.DELETE("/assets/:id", s.deleteAsset)

		authorized.GET("/summary", s.getSummary)
		authorized.GET("/rates", s.getRates)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
