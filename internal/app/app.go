// Package app wires configuration, storage, and services into one core
// shared by the server entry point and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/interfaces"
	"github.com/bobmcallan/rentfolio/internal/services/analysis"
	"github.com/bobmcallan/rentfolio/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	// Load configuration - check provided path, RENTFOLIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("RENTFOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "rentfolio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/rentfolio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage paths to the binary directory
	if !filepath.IsAbs(config.Storage.Listings.Path) {
		config.Storage.Listings.Path = filepath.Join(binDir, config.Storage.Listings.Path)
	}
	if !filepath.IsAbs(config.Storage.Snapshots.Path) {
		config.Storage.Snapshots.Path = filepath.Join(binDir, config.Storage.Snapshots.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewManager(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:          config,
		Logger:          logger,
		Storage:         store,
		AnalysisService: analysis.NewService(store, logger),
		StartupTime:     time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("listings", config.Storage.Listings.Path).
		Str("snapshots", config.Storage.Snapshots.Path).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
