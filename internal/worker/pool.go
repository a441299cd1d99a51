package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/models"
	"github.com/ternarybob/buildlog/internal/services/ingest"
)

// Parser runs one parse request
type Parser interface {
	Parse(ctx context.Context, req ingest.Request) (*models.BuildRun, error)
}

// Outcome is the result of one request in a batch
type Outcome struct {
	Request ingest.Request
	Run     *models.BuildRun
	Err     error
}

// Pool parses several build logs concurrently. Each request gets its own
// parser run, so runs never share state.
type Pool struct {
	parser     Parser
	logger     arbor.ILogger
	numWorkers int
}

// NewPool creates a pool. numWorkers <= 0 uses GOMAXPROCS.
func NewPool(parser Parser, logger arbor.ILogger, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		parser:     parser,
		logger:     logger,
		numWorkers: numWorkers,
	}
}

// Run parses every request and returns the outcomes in request order.
// Requests not started before ctx is cancelled report ctx.Err().
func (p *Pool) Run(ctx context.Context, requests []ingest.Request) []Outcome {
	outcomes := make([]Outcome, len(requests))
	for i, req := range requests {
		outcomes[i].Request = req
	}

	workers := p.numWorkers
	if workers > len(requests) {
		workers = len(requests)
	}

	p.logger.Debug().
		Int("num_workers", workers).
		Int("requests", len(requests)).
		Msg("Starting parse pool")

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go p.worker(ctx, w, indexes, outcomes, &wg)
	}

feed:
	for i := range requests {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	for i := range outcomes {
		if outcomes[i].Run == nil && outcomes[i].Err == nil {
			outcomes[i].Err = ctx.Err()
		}
	}
	return outcomes
}

// worker is the main worker loop
func (p *Pool) worker(ctx context.Context, workerID int, indexes <-chan int, outcomes []Outcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range indexes {
		outcomes[i].Run, outcomes[i].Err = p.process(ctx, workerID, outcomes[i].Request)
	}
}

// process runs one request, turning a panic into an error
func (p *Pool) process(ctx context.Context, workerID int, req ingest.Request) (run *models.BuildRun, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			p.logger.Error().
				Int("worker_id", workerID).
				Str("path", req.Path).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(buf[:n])).
				Msg("Recovered from panic while parsing")
			run, err = nil, fmt.Errorf("parse of %s panicked: %v", req.Path, r)
		}
	}()

	p.logger.Debug().Int("worker_id", workerID).Str("path", req.Path).Msg("Processing build log")
	return p.parser.Parse(ctx, req)
}
