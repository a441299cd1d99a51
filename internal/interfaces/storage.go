package interfaces

// StorageManager - composite interface for all storage operations
type StorageManager interface {
	RunStorage() RunStorage
	Close() error
}
