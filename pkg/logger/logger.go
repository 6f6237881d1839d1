// Package logger builds the zap loggers shared by the server and the admin CLI.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/futamigo/internal/config"
)

// New creates a logger from LOG_* environment variables.
func New() (*zap.SugaredLogger, error) {
	cfg := appConfig.LoadLoggerConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a logger from cfg. An unknown level falls back to info.
func NewWithConfig(cfg appConfig.LoggerConfig) (*zap.SugaredLogger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.Encoding = encoding(cfg.Format)
	zapConfig.EncoderConfig = encoderConfig(zapConfig.Encoding)
	zapConfig.OutputPaths = cfg.OutputPaths()
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if cfg.Service != "" {
		zapConfig.InitialFields = map[string]interface{}{"service": cfg.Service}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

func encoding(format string) string {
	if format == "console" {
		return "console"
	}
	return "json"
}

func encoderConfig(enc string) zapcore.EncoderConfig {
	if enc == "console" {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return ec
	}
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.RFC3339TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	return ec
}
