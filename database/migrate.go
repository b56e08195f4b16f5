package database

import (
	"goosedoor_backend/internal/logger"
	"goosedoor_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4() backs the primary key defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Offer{},
		&models.BlacklistedCompany{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrated")
	return nil
}
