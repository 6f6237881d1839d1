// Package database opens and configures the gorm connection used by every
// feature repository and applies schema migrations.
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appConfig "github.com/festy23/futamigo/internal/config"
	"github.com/festy23/futamigo/pkg/retry"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection configuration.
type Config struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
	// Path is the sqlite file (or ":memory:") used when Driver is sqlite.
	Path string
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool
	Pool        PoolConfig
}

// LoadConfigFromEnv loads database configuration from DB_* variables.
func LoadConfigFromEnv() Config {
	return Config{
		Driver:   strings.ToLower(appConfig.GetEnv("DB_DRIVER", DriverPostgres)),
		Host:     appConfig.GetEnv("DB_HOST", "localhost"),
		User:     appConfig.GetEnv("DB_USER", "postgres"),
		Password: appConfig.GetEnv("DB_PASSWORD", "postgres"),
		Name:     appConfig.GetEnv("DB_NAME", "futamigo"),
		Port:     appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:  appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone: appConfig.GetEnv("DB_TIMEZONE", "UTC"),
		Path:     appConfig.GetEnv("DB_PATH", "futamigo.db"),

		AutoMigrate: appConfig.GetEnvBool("DB_AUTO_MIGRATE", true),
		Pool:        LoadPoolConfigFromEnv(),
	}
}

// Validate checks the driver and the fields it needs.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" || c.Name == "" || c.User == "" {
			return errors.New("postgres requires DB_HOST, DB_NAME and DB_USER")
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("sqlite requires DB_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("pool config validation failed: %w", err)
	}
	return nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

// SanitizeError strips the password from connection errors.
func (c Config) SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if c.Password != "" {
		msg = strings.ReplaceAll(msg, c.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", msg)
}

// LoadRetryPolicyFromEnv loads the connect retry policy from DB_RETRY_* variables.
func LoadRetryPolicyFromEnv() retry.Policy {
	p := retry.DatabasePolicy()
	p.MaxAttempts = appConfig.GetEnvInt("DB_RETRY_MAX_ATTEMPTS", p.MaxAttempts)
	p.InitialDelay = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", p.InitialDelay)
	p.MaxDelay = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", p.MaxDelay)
	p.Multiplier = appConfig.GetEnvFloat("DB_RETRY_MULTIPLIER", p.Multiplier)
	return p
}

// PoolConfig holds connection pool limits.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns default connection pool configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// LoadPoolConfigFromEnv loads pool limits from DB_MAX_* variables.
func LoadPoolConfigFromEnv() PoolConfig {
	d := DefaultPoolConfig()
	return PoolConfig{
		MaxOpenConns:    appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", d.MaxOpenConns),
		MaxIdleConns:    appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", d.MaxIdleConns),
		ConnMaxLifetime: appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", d.ConnMaxLifetime),
		ConnMaxIdleTime: appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", d.ConnMaxIdleTime),
	}
}

// Validate checks pool limits.
func (p PoolConfig) Validate() error {
	if p.MaxOpenConns <= 0 {
		return errors.New("MaxOpenConns must be greater than 0")
	}
	if p.MaxIdleConns < 0 {
		return errors.New("MaxIdleConns must be non-negative")
	}
	if p.MaxIdleConns > p.MaxOpenConns {
		return fmt.Errorf("MaxIdleConns (%d) cannot be greater than MaxOpenConns (%d)",
			p.MaxIdleConns, p.MaxOpenConns)
	}
	return nil
}
