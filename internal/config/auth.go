package config

import (
	"fmt"
	"time"
)

const minSecretLength = 32

// AuthConfig holds token signing configuration.
type AuthConfig struct {
	// Secret is the HMAC key used to sign access tokens.
	Secret string
	// Issuer is written to the iss claim.
	Issuer string
	// TokenTTL is how long an access token stays valid.
	TokenTTL time.Duration
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret:   GetEnv("JWT_SECRET", ""),
		Issuer:   GetEnv("JWT_ISSUER", "futamigo"),
		TokenTTL: GetEnvDuration("JWT_TTL", 72*time.Hour),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be greater than 0")
	}
	return nil
}

// RateLimitConfig holds the login rate limiter settings.
type RateLimitConfig struct {
	// LoginPerSecond is the sustained number of login attempts allowed per client IP.
	LoginPerSecond float64
	// LoginBurst is the burst size for login attempts per client IP.
	LoginBurst int
}

// LoadRateLimitConfigFromEnv loads rate limiter configuration from environment variables.
func LoadRateLimitConfigFromEnv() RateLimitConfig {
	return RateLimitConfig{
		LoginPerSecond: GetEnvFloat("LOGIN_RATE_PER_SEC", 0.5),
		LoginBurst:     GetEnvInt("LOGIN_BURST", 5),
	}
}

// Validate validates rate limiter configuration.
func (c RateLimitConfig) Validate() error {
	if c.LoginPerSecond <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_SEC must be greater than 0")
	}
	if c.LoginBurst <= 0 {
		return fmt.Errorf("LOGIN_BURST must be greater than 0")
	}
	return nil
}
