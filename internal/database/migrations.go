package database

import (
	"QRTrack-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all domain models. Order matters
// because of foreign keys.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	models := []interface{}{
		&domain.User{},      // owners first
		&domain.QRCode{},    // codes reference users
		&domain.ScanEvent{}, // events reference codes
	}

	for _, model := range models {
		modelName := fmt.Sprintf("%T", model)
		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model", zap.String("model", modelName), zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
		log.Debug("model migrated", zap.String("model", modelName))
	}

	log.Info("database auto-migration completed", zap.Int("migrated_models", len(models)))
	return nil
}
