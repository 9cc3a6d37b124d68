package postgres

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/config"
	"github.com/VitaminP8/bloggery/internal/logger"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

var DB *gorm.DB

// GetDB returns the global DB handle (for tests).
func GetDB() *gorm.DB {
	return DB
}

// InitDB connects to PostgreSQL and sets the global DB handle.
func InitDB(cfg *config.Config) error {
	db, err := gorm.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	DB = db
	logger.Info.Println("connected to the database")
	return nil
}

// Migrate creates the schema if it is absent.
func Migrate() error {
	err := DB.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// CloseDB closes the database connection.
func CloseDB() error {
	if DB == nil {
		return nil
	}

	if err := DB.Close(); err != nil {
		return fmt.Errorf("failed to close the database connection: %w", err)
	}

	logger.Info.Println("database connection closed")
	return nil
}

// InitDBWithConnection injects a DB connection (for tests).
func InitDBWithConnection(db *gorm.DB) {
	DB = db
}
