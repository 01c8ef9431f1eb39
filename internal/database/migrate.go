package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mealbook/backend/internal/models"
)

// Migrate creates the full schema via gorm auto-migration. On postgres the
// pgvector extension is installed first so the recipe embedding column can
// be created.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.RecipeFavorite{},
		&models.ShoppingCart{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	log.Printf("Database schema migrated")
	return nil
}
