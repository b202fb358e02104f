package database

import (
	"gorm.io/gorm"

	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/model"
)

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB, logger coreport.Logger) error {
	logger.Info("Running database migrations", nil)

	if err := db.AutoMigrate(&model.User{}, &model.Transaction{}); err != nil {
		logger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Database migrations completed", nil)
	return nil
}
