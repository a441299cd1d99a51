// -----------------------------------------------------------------------
// Ingest Service - parses build logs and stores run snapshots
// -----------------------------------------------------------------------

package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/buildlog"
	"github.com/ternarybob/buildlog/internal/common"
	"github.com/ternarybob/buildlog/internal/interfaces"
	"github.com/ternarybob/buildlog/internal/models"
)

// Request describes one parse. Exactly one of Path or Content is read;
// Content wins when both are set.
type Request struct {
	Path          string
	Content       string
	AnonymizeRoot string // Overrides parser.anonymize_root when set
	Save          bool
}

// Service runs the build log parser and persists the results
type Service struct {
	runs   interfaces.RunStorage
	config *common.ParserConfig
	logger arbor.ILogger
}

// NewService creates a new ingest service. runs may be nil when nothing is saved.
func NewService(runs interfaces.RunStorage, config *common.ParserConfig, logger arbor.ILogger) *Service {
	return &Service{
		runs:   runs,
		config: config,
		logger: logger,
	}
}

// Parse runs the parser for req and returns the snapshot. A snapshot is
// returned alongside the error when the run itself failed.
func (s *Service) Parse(ctx context.Context, req Request) (*models.BuildRun, error) {
	root := s.config.AnonymizeRoot
	if req.AnonymizeRoot != "" {
		root = req.AnonymizeRoot
	}

	driver := buildlog.NewDriver(
		buildlog.WithAnonymizeRoot(root),
		buildlog.WithPlaceholder(s.config.Placeholder),
		buildlog.WithCacheSize(s.config.SuffixCacheSize),
		buildlog.WithReporter(s.report),
	)

	started := time.Now()
	logPath := req.Path

	s.logger.Info().Str("path", logPath).Str("anonymize_root", root).Msg("Parsing build log")

	var (
		result *buildlog.Result
		err    error
	)
	if req.Content != "" {
		if logPath == "" {
			logPath = "<inline>"
		}
		result, err = driver.RunReader(ctx, strings.NewReader(req.Content))
	} else {
		result, err = driver.Run(ctx, req.Path)
	}

	run := Snapshot(uuid.New().String(), logPath, root, result, started)
	if err != nil {
		s.logger.Error().Err(err).Str("path", logPath).Msg("Build log parse failed")
		return run, fmt.Errorf("failed to parse %s: %w", logPath, err)
	}

	s.logger.Info().
		Str("run_id", run.ID).
		Int("items", len(run.Items)).
		Int("unhandled", run.Stats.Unhandled).
		Int("failed", run.Stats.Failed).
		Int("warnings", run.Stats.Warnings).
		Int64("duration_ms", run.DurationMS).
		Msg("Build log parsed")

	if req.Save {
		if err := s.Save(ctx, run); err != nil {
			return run, err
		}
	}
	return run, nil
}

// ParseReader parses a log from r without touching the filesystem
func (s *Service) ParseReader(ctx context.Context, name string, r io.Reader, save bool) (*models.BuildRun, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return s.Parse(ctx, Request{Path: name, Content: string(data), Save: save})
}

// Save persists run
func (s *Service) Save(ctx context.Context, run *models.BuildRun) error {
	if s.runs == nil {
		return fmt.Errorf("run storage is not configured")
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.logger.Error().Err(err).Str("run_id", run.ID).Msg("Failed to save run")
		return err
	}
	s.logger.Info().Str("run_id", run.ID).Msg("Run saved")
	return nil
}

// report routes parser diagnostics to the logger by severity
func (s *Service) report(msg string) {
	switch {
	case strings.HasPrefix(msg, "ERROR:"):
		s.logger.Error().Msg(msg)
	case strings.HasPrefix(msg, "Warning:"):
		s.logger.Warn().Msg(msg)
	default:
		s.logger.Info().Msg(msg)
	}
}
