package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	appConfig "github.com/festy23/futamigo/internal/config"
)

// MigrationsPath returns the migrations directory, MIGRATIONS_PATH or "migrations".
func MigrationsPath() string {
	return appConfig.GetEnv("MIGRATIONS_PATH", "migrations")
}

// Migrate brings the schema up to date. Postgres runs the versioned SQL files
// through golang-migrate; sqlite, used for local runs and tests, auto-migrates
// the given models instead.
func Migrate(db *gorm.DB, models ...any) error {
	if db == nil {
		return ErrNilDB
	}
	if db.Dialector.Name() != DriverPostgres {
		if err := db.AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		return nil
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back the given number of postgres migrations.
func MigrateDown(db *gorm.DB, steps int) error {
	if db == nil {
		return ErrNilDB
	}
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if db.Dialector.Name() != DriverPostgres {
		return fmt.Errorf("rollback is only supported on postgres, got %s", db.Dialector.Name())
	}
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

func newMigrator(db *gorm.DB) (*migrate.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	path, err := filepath.Abs(MigrationsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for migrations: %w", err)
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return nil, fmt.Errorf("migrations directory does not exist: %s", path)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, DriverPostgres, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
