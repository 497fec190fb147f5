package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Breaker   BreakerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"3001"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// FetchConfig controls upstream retrieval.
type FetchConfig struct {
	Timeout      time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	UserAgent    string        `envconfig:"FETCH_USER_AGENT" default:"Faleproxy/1.0"`
	MaxBodyBytes int           `envconfig:"FETCH_MAX_BODY_BYTES" default:"10485760"`
	RateLimit    float64       `envconfig:"FETCH_RATE_LIMIT" default:"0"`
}

// BreakerConfig controls the per-host upstream circuit breakers. Off by default.
type BreakerConfig struct {
	Enabled     bool          `envconfig:"BREAKER_ENABLED" default:"false"`
	MaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"10"`
	Timeout     time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds inbound rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3001",
			Host: "0.0.0.0",
		},
		Fetch: FetchConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Faleproxy/1.0",
			MaxBodyBytes: 10 * 1024 * 1024,
		},
		Breaker: BreakerConfig{
			Enabled:     false,
			MaxFailures: 10,
			Timeout:     30 * time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
