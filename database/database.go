package database

import (
	"context"
	"fmt"

	"chitrakalakar-app/config"
	"chitrakalakar-app/internal/store"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to postgres and migrates every model.
func InitDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store.Store, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	log.Info("connected and migrated", zap.Int("models", len(store.Models())))
	return st, nil
}
