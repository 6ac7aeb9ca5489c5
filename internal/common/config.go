// Package common provides shared utilities for Rentfolio
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// Config holds all configuration for Rentfolio
type Config struct {
	Environment string                `toml:"environment"`
	Server      ServerConfig          `toml:"server"`
	Storage     StorageConfig         `toml:"storage"`
	Logging     LoggingConfig         `toml:"logging"`
	Analysis    models.AnalysisParams `toml:"analysis"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds path configuration for the two storage areas.
type StorageConfig struct {
	Listings  AreaConfig `toml:"listings"`  // Scraped listing documents (file-based JSON)
	Snapshots AreaConfig `toml:"snapshots"` // Analysis snapshots (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Storage: StorageConfig{
			Listings:  AreaConfig{Path: "data/listings"},
			Snapshots: AreaConfig{Path: "data/snapshots"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Analysis: models.DefaultParams(),
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validateAnalysisDefaults(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RENTFOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RENTFOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RENTFOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RENTFOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("RENTFOLIO_DATA_PATH"); path != "" {
		config.Storage.Listings.Path = filepath.Join(path, "listings")
		config.Storage.Snapshots.Path = filepath.Join(path, "snapshots")
	}
}

// validateAnalysisDefaults rejects parameter defaults the engine cannot
// degrade around: a zero holding period or loan term produces empty schedules
// everywhere, so it is a configuration error rather than a data-quality flag.
func validateAnalysisDefaults(config *Config) error {
	if config.Analysis.HoldingYears <= 0 {
		return fmt.Errorf("analysis.holding_years must be positive, got %d", config.Analysis.HoldingYears)
	}
	if config.Analysis.LoanTermYears <= 0 {
		return fmt.Errorf("analysis.loan_term_years must be positive, got %d", config.Analysis.LoanTermYears)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
