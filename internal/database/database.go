package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/futamigo/pkg/retry"
)

// ErrNilDB is returned by helpers given a nil connection.
var ErrNilDB = errors.New("database connection is nil")

// Open connects using cfg, retrying transient failures, and applies pool limits.
func Open(ctx context.Context, cfg Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy := LoadRetryPolicyFromEnv()
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		logger.Warnw("database not ready, retrying",
			"driver", cfg.Driver,
			"attempt", attempt,
			"wait", wait,
			"error", cfg.SanitizeError(err),
		)
	}

	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
	db, err := retry.Value(ctx, policy, func() (*gorm.DB, error) {
		return gorm.Open(dialector(cfg), gormCfg)
	})
	if err != nil {
		return nil, cfg.SanitizeError(err)
	}

	pool := cfg.Pool
	if cfg.Driver == DriverSQLite {
		// sqlite serializes writers; one connection also keeps ":memory:" shared.
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}
	if err := SetupPool(db, pool); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected", "driver", cfg.Driver, "name", cfg.Name)
	return db, nil
}

func dialector(cfg Config) gorm.Dialector {
	if cfg.Driver == DriverSQLite {
		return sqlite.Open(cfg.Path)
	}
	return postgres.Open(cfg.DSN())
}

// SetupPool configures connection pool settings.
func SetupPool(db *gorm.DB, p PoolConfig) error {
	if err := p.Validate(); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)
	return nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// Stats returns connection pool statistics.
func Stats(db *gorm.DB) (sql.DBStats, error) {
	if db == nil {
		return sql.DBStats{}, ErrNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return sql.DBStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Stats(), nil
}
