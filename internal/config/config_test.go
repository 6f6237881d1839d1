package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server: validServerConfig(),
		Logger: LoggerConfig{
			Level:   "info",
			Format:  "json",
			Service: "futamigo",
		},
		Auth: AuthConfig{
			Secret:   strings.Repeat("s", 32),
			Issuer:   "futamigo",
			TokenTTL: time.Hour,
		},
		RateLimit: RateLimitConfig{
			LoginPerSecond: 1,
			LoginBurst:     5,
		},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "LOG_LEVEL", "GIN_MODE", "JWT_TTL", "LOGIN_BURST"} {
		t.Setenv(k, "")
	}

	cfg := LoadFromEnv()
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimit.LoginBurst)
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "a-very-long-secret-for-signing-tokens")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("LOGIN_RATE_PER_SEC", "2.5")

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "a-very-long-secret-for-signing-tokens", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.LoginPerSecond)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger config validation failed")
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.Secret = "short"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth config validation failed")
	})

	t.Run("invalid rate limit", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.LoginBurst = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})
}
