package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	// Host is the interface to bind; empty binds all interfaces.
	Host string
	// Port accepts both "8080" and ":8080".
	Port string
	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
	// MaxHeaderBytes caps request header size.
	MaxHeaderBytes int
}

// LoadServerConfigFromEnv loads server configuration from SERVER_* variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:              GetEnv("SERVER_HOST", ""),
		Port:              GetEnv("SERVER_PORT", ":8080"),
		ReadHeaderTimeout: GetEnvDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:      GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:       GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:   GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxHeaderBytes:    GetEnvInt("SERVER_MAX_HEADER_BYTES", 1<<20),
	}
}

// Address returns the listen address in host:port form.
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	port, err := strconv.Atoi(strings.TrimPrefix(c.Port, ":"))
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %q", c.Port)
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"ReadHeaderTimeout", c.ReadHeaderTimeout},
		{"ReadTimeout", c.ReadTimeout},
		{"WriteTimeout", c.WriteTimeout},
		{"IdleTimeout", c.IdleTimeout},
		{"ShutdownTimeout", c.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be greater than 0", t.name)
		}
	}

	if c.MaxHeaderBytes < 1024 {
		return fmt.Errorf("MaxHeaderBytes must be at least 1024, got %d", c.MaxHeaderBytes)
	}
	return nil
}
