package migration

import (
	"backstube/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("migrating user table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Ingredient{}, &entities.Recipe{}); err != nil {
		return fmt.Errorf("migrating recipe catalogue: %w", err)
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		return fmt.Errorf("migrating recipe ingredient table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Favorite{}); err != nil {
		return fmt.Errorf("migrating backstube table: %w", err)
	}
	if err := db.AutoMigrate(&entities.Deployment{}); err != nil {
		return fmt.Errorf("migrating deployment table: %w", err)
	}

	log.Info("Database migration complete")
	return nil
}
