// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/roach88/invoicebook/internal/logger"
)

// DefaultDatabasePath is the fixed local storage location.
const DefaultDatabasePath = "invoices.db"

type Config struct {
	// DatabasePath is the SQLite file holding all invoices.
	DatabasePath string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads .env files (if present) and then the environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	defaults := logger.DefaultConfig()
	config := &Config{
		DatabasePath:  getEnv("INVOICEBOOK_DB", DefaultDatabasePath),
		LogLevel:      getEnv("LOG_LEVEL", defaults.Level),
		LogFormat:     getEnv("LOG_FORMAT", defaults.Format),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", defaults.TimeFormat),
		LogOutput:     getEnv("LOG_OUTPUT", defaults.Output),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the settings that cannot be defaulted away.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("INVOICEBOOK_DB must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
