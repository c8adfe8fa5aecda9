package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/config"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	httpserver "github.com/Sberg18/admin-financiera-sb-sub000/internal/http"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

func main() {
	_ = godotenv.Load(".env")

	database.Connect()
	database.DB.AutoMigrate(
		&models.User{},
		&models.CreditCard{},
		&models.Category{},
		&models.Expense{},
		&models.Income{},
		&models.Asset{},
	)

	cfg := config.Load()
	r := httpserver.NewServer(cfg)
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
