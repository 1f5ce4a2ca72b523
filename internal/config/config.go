package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration values for the application
type Config struct {
	Port                string
	AllowedOrigins      []string
	LogLevel            string
	Environment         string
	DatabaseDriver      string
	DatabaseURL         string
	SQLitePath          string
	RedisURL            string
	LiveResultsInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	interval, err := time.ParseDuration(getEnv("LIVE_RESULTS_INTERVAL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIVE_RESULTS_INTERVAL: %w", err)
	}

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Environment:         getEnv("ENVIRONMENT", "production"),
		DatabaseDriver:      strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SQLitePath:          getEnv("SQLITE_PATH", "team-vote.db"),
		RedisURL:            getEnv("REDIS_URL", ""),
		LiveResultsInterval: interval,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of settings
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want %s or %s)", c.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	if c.LiveResultsInterval <= 0 {
		return fmt.Errorf("LIVE_RESULTS_INTERVAL must be positive")
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
