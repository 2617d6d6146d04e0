package database

import (
	"log"
	"os"
	"time"

	"tailorshop/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const maxOpenConns = 10

// Connect opens the MySQL pool from the DB_DSN env var, retrying while
// the database comes up.
func Connect() {
	dsn := os.Getenv("DB_DSN")

	if dsn == "" {
		log.Fatal("❌ Error: DB_DSN not found in .env file. Please configure your database.")
	}

	var err error

	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool:", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ Successfully connected to MySQL!")
}

// EnsureSchema syncs the schema and seeds the rows the app needs to be
// usable on an empty database. It runs once at startup, before the
// server accepts traffic, and is idempotent: AutoMigrate adds any
// column missing from an older install (including the legacy admin
// password columns) without touching existing data.
func EnsureSchema() error {
	err := DB.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Order{},
		&models.Measurement{},
		&models.BillingSettings{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultAdmin(); err != nil {
		return err
	}
	if err := seedDefaultSettings(); err != nil {
		return err
	}

	log.Println("✅ Database Schema Synced!")
	return nil
}

// seedDefaultAdmin creates the bootstrap account when no admin row
// exists for the configured username. Password is stored hashed from
// day one; the plaintext column stays NULL.
func seedDefaultAdmin() error {
	username := os.Getenv("DEFAULT_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@123"
	}

	var count int64
	if err := DB.Model(&models.Admin{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin user:", username)
	return nil
}

// seedDefaultSettings inserts the shop's billing settings row if the
// table is empty.
func seedDefaultSettings() error {
	var count int64
	if err := DB.Model(&models.BillingSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.BillingSettings{
		ShopName:      "Karanjkar Tailors",
		ShopAddress:   "Your Shop Address",
		ShopPhone:     "+91 00000 00000",
		InvoicePrefix: "KT",
		LogoURL:       "/default-tailor-logo.svg",
		ApplyTax:      true,
		TaxPercent:    5,
	}
	return DB.Create(&settings).Error
}

// Ping checks liveness against the store for the /health probe.
func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
