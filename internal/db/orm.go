package db

import (
	"fmt"
	"time"

	"flightontime/backend/internal/config"
	"flightontime/backend/internal/logging"
	models "flightontime/backend/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var PgDB *gorm.DB

// InitORM opens the configured database through GORM, retrying Postgres while
// it comes up, and migrates the prediction schema.
func InitORM(cfg *config.AppConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
			if err == nil {
				break
			}
			time.Sleep(500 * time.Millisecond)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	PgDB = db
	logging.Info("Connected to database via GORM", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate creates or updates the airport and prediction tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Airport{}, &models.PredictionRequest{}, &models.Prediction{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
