package storage

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/common"
	"github.com/ternarybob/buildlog/internal/interfaces"
	"github.com/ternarybob/buildlog/internal/storage/badger"
)

// NewStorageManager creates the run database described by config
func NewStorageManager(logger arbor.ILogger, config *common.Config) (interfaces.StorageManager, error) {
	return badger.NewManager(logger, &config.Storage.Badger)
}
