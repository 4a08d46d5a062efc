package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/pulseplan/backend/internal/models"
)

// RunMigrations brings the schema up to date. On Postgres the pgvector
// extension must exist before the meals table migrates its embedding column.
func RunMigrations(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return err
		}
	} else {
		log.Printf("[Database] non-postgres dialect %q, skipping vector extension", db.Dialector.Name())
	}

	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.Allergen{},
		&models.Meal{},
		&models.WeightLog{},
		&models.ProfileHistory{},
		&models.Feedback{},
	)
}
