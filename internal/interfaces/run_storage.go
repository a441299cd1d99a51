package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/buildlog/internal/models"
)

// ErrRunNotFound is returned when no stored run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// RunStorage persists parsed build runs
type RunStorage interface {
	// SaveRun inserts or replaces a run keyed by its ID
	SaveRun(ctx context.Context, run *models.BuildRun) error

	// GetRun returns ErrRunNotFound when the ID is unknown
	GetRun(ctx context.Context, id string) (*models.BuildRun, error)

	// ListRuns returns run summaries, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]models.BuildRunSummary, error)

	DeleteRun(ctx context.Context, id string) error
	CountRuns(ctx context.Context) (int, error)
}
