package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/common"
	"github.com/ternarybob/buildlog/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	runs   interfaces.RunStorage
	logger arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		runs:   NewRunStorage(db, logger),
		logger: logger,
	}

	logger.Debug().Str("path", config.Path).Msg("Badger storage manager initialized")

	return manager, nil
}

// RunStorage returns the run storage interface
func (m *Manager) RunStorage() interfaces.RunStorage {
	return m.runs
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
