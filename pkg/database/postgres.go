package database

import (
	"log"
	"os"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

// Seed fills an empty catalog and settings row with the launch defaults.
func Seed(db *gorm.DB) error {
	var packageCount int64
	if err := db.Model(&models.CreditPackage{}).Count(&packageCount).Error; err != nil {
		return err
	}

	if packageCount == 0 {
		packages := []models.CreditPackage{
			{Name: "Starter Pack", Credits: 100, Price: 50},
			{Name: "Pro Pack", Credits: 500, Price: 200},
			{Name: "Enterprise", Credits: 1500, Price: 500},
		}
		if err := db.Create(&packages).Error; err != nil {
			return err
		}
	}

	var settingsCount int64
	if err := db.Model(&models.PaymentSettings{}).Count(&settingsCount).Error; err != nil {
		return err
	}

	if settingsCount == 0 {
		settings := models.PaymentSettings{
			MethodName:    "Bkash/Nagad",
			AccountNumber: "01700000000",
		}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
	}

	return nil
}
