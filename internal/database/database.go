package database

import (
	"fmt"
	"log"

	"github.com/yamori-dev/todo-progress-api/internal/config"
	"github.com/yamori-dev/todo-progress-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SeedUserNames are the two fixed users every deployment starts with.
var SeedUserNames = []string{"G", "A"}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DB.DSN())
	default:
		dialector = postgres.Open(cfg.DB.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Seed creates the fixed user pair if absent. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	for _, name := range SeedUserNames {
		var user models.User
		err := db.Where(models.User{Name: name}).FirstOrCreate(&user).Error
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", name, err)
		}
	}
	log.Println("Seed users initialized")
	return nil
}
