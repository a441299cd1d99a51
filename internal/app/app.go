package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/common"
	"github.com/ternarybob/buildlog/internal/interfaces"
	"github.com/ternarybob/buildlog/internal/services/ingest"
	"github.com/ternarybob/buildlog/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Run storage (nil for parser-only apps)
	RunStorage interfaces.RunStorage

	// Ingest service (parser + snapshot + save)
	IngestService *ingest.Service
}

// New initializes the application with storage and services
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initServices()

	logger.Debug().Str("storage", cfg.Storage.Badger.Path).Msg("Application initialized")
	return app, nil
}

// NewParser initializes the application without opening storage.
// Saving runs through it fails.
func NewParser(cfg *common.Config, logger arbor.ILogger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
	}
	app.initServices()
	return app
}

func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return err
	}
	a.StorageManager = storageManager
	a.RunStorage = storageManager.RunStorage()
	return nil
}

func (a *App) initServices() {
	a.IngestService = ingest.NewService(a.RunStorage, &a.Config.Parser, a.Logger)
}

// Close releases storage
func (a *App) Close() error {
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
			return err
		}
		a.Logger.Debug().Msg("Storage closed")
	}
	return nil
}
