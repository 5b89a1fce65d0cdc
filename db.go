package main

import (
	"log"
	"os"
	"strings"

	"kasapi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDB() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Currencies first so the users.default_currency_id FK can be applied safely.
		if err := db.AutoMigrate(&models.Currency{}); err != nil {
			log.Printf("migration warning (currencies): %v", err)
		}
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Category{}); err != nil {
			log.Printf("migration warning (categories): %v", err)
		}
		if err := db.AutoMigrate(&models.Record{}); err != nil {
			log.Printf("migration warning (records): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
	seedDB(db)
	return db
}

// seedDB ensures a small set of master currencies exists (idempotent).
func seedDB(db *gorm.DB) {
	currencies := []models.Currency{
		{Code: "USD", Name: "US Dollar"},
		{Code: "EUR", Name: "Euro"},
	}
	for _, cu := range currencies {
		var cnt int64
		db.Model(&models.Currency{}).Where("code = ?", cu.Code).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&cu).Error; err != nil {
				log.Printf("failed to seed currency %s: %v", cu.Code, err)
			}
		}
	}
}
