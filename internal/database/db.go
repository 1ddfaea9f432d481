package database

import (
	"log"

	"mobile-shop-server/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens (or creates) the SQLite file and syncs the schema.
func Connect(path string) {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	log.Println("Connected to SQLite at " + path)

	err = DB.AutoMigrate(
		&models.Phone{},
		&models.Product{},
		&models.Customer{},
		&models.Partner{},
		&models.CustomerLedgerEntry{},
		&models.PartnerLedgerEntry{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.InstallmentSale{},
		&models.InstallmentPayment{},
		&models.Repair{},
		&models.Setting{},
	)
	if err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	log.Println("Database schema synced")
}
