package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/interfaces"
	"github.com/ternarybob/buildlog/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// RunStorage implements interfaces.RunStorage for Badger
type RunStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewRunStorage creates a new RunStorage instance
func NewRunStorage(db *BadgerDB, logger arbor.ILogger) interfaces.RunStorage {
	return &RunStorage{
		db:     db,
		logger: logger,
	}
}

func (s *RunStorage) SaveRun(ctx context.Context, run *models.BuildRun) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if err := s.db.Store().Upsert(run.ID, run); err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	s.logger.Debug().Str("run_id", run.ID).Int("items", len(run.Items)).Msg("Run saved")
	return nil
}

func (s *RunStorage) GetRun(ctx context.Context, id string) (*models.BuildRun, error) {
	var run models.BuildRun
	err := s.db.Store().Get(id, &run)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

func (s *RunStorage) ListRuns(ctx context.Context, limit int) ([]models.BuildRunSummary, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var runs []models.BuildRun
	if err := s.db.Store().Find(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]models.BuildRunSummary, 0, len(runs))
	for i := range runs {
		summaries = append(summaries, runs[i].Summary())
	}
	return summaries, nil
}

func (s *RunStorage) DeleteRun(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.BuildRun{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return fmt.Errorf("%w: %s", interfaces.ErrRunNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	return nil
}

func (s *RunStorage) CountRuns(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.BuildRun{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return int(count), nil
}
