package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-quote-desk/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ErrNotFound is returned when a quote (or user) does not exist.
var ErrNotFound = errors.New("record not found")

// Connect opens the configured database, waiting for it to come up, and
// migrates the schema.
func Connect(driver, dsn string) {
	if dsn == "" {
		log.Fatal("❌ Error: DB_DSN not set. Please configure your database.")
	}

	dialector, err := openDialector(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}

	// Wait for DB to be ready
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(dialector, &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			TranslateError: true,
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

	log.Printf("✅ Successfully connected to %s!", driver)

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("✅ Database Schema Synced!")
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("❌ Error: unsupported DB_DRIVER %q (use mysql, postgres or sqlite)", driver)
	}
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Quote{},
		&models.LineItem{},
		&models.Company{},
	)
}

// OpenMemory gives tests a private in-memory sqlite database and installs it
// as DB.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	// One connection, otherwise each pooled connection sees its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}
