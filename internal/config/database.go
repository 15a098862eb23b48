package config

import (
	"fmt"
	stdlog "log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	zl := logging.With().Str("component", "gorm").Logger()
	gormLogger := logger.New(stdlog.New(zl, "", 0), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logging.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Database connected")

	if err := db.AutoMigrate(&models.ContentItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logging.Info().Msg("Database migration completed")

	return db, nil
}
