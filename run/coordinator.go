package run

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/hupe1980/scoremesh/artifact"
	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/logging"
	"github.com/hupe1980/scoremesh/scorer"
	"github.com/hupe1980/scoremesh/stepping"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Workers sets the number of per-worker accumulators allocated at run
	// start. Defaults to the number of CPUs.
	Workers int
	// Writer persists the merged result at end of run.
	Writer core.ResultWriter
	// Logger receives lifecycle diagnostics.
	Logger logging.Logger
}

// Coordinator owns the accumulator lifecycle for sequential runs: allocation
// at run start, per-worker handler distribution while the run is active, and
// the merge + write at run end. It implements core.Coordinator. Public
// methods are safe for concurrent use; StartRun and EndRun themselves are
// expected from a single controlling context.
//
// The coordinator does not drive workers. The transport engine (or a
// synthetic source) requests one StepHandler per worker via Observer and is
// responsible for the run barrier: EndRun must only be called after all
// workers have stopped emitting steps.
type Coordinator struct {
	cfg     core.HistogramConfig
	workers int
	writer  core.ResultWriter
	logger  logging.Logger

	mu        sync.RWMutex
	runID     string
	active    bool
	scorers   []*scorer.Scorer
	observers []*stepping.Observer
	started   time.Time
}

// New constructs a Coordinator for the given histogram configuration with
// optional overrides. The configuration is validated at StartRun, not here,
// so a coordinator can be wired up before the final geometry is known.
func New(cfg core.HistogramConfig, optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Workers: runtime.NumCPU(),
		Writer:  artifact.NewMemoryWriter(),
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Coordinator{
		cfg:     cfg,
		workers: opts.Workers,
		writer:  opts.Writer,
		logger:  core.EnsureLogger(opts.Logger),
	}
}

// Workers returns the number of per-worker accumulators this coordinator
// allocates.
func (c *Coordinator) Workers() int { return c.workers }

// Config returns the histogram configuration runs are scored against.
func (c *Coordinator) Config() core.HistogramConfig { return c.cfg }

// StartRun validates the histogram configuration, allocates one zeroed
// accumulator per worker and returns the new run id. An invalid configuration
// is fatal: the run must not proceed with a broken histogram shape.
func (c *Coordinator) StartRun() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return "", ErrRunActive
	}

	if err := c.cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid histogram config: %w", err)
	}

	c.runID = core.NewID()
	c.scorers = make([]*scorer.Scorer, c.workers)
	c.observers = make([]*stepping.Observer, c.workers)
	for i := range c.scorers {
		c.scorers[i] = scorer.New(c.cfg)
		c.observers[i] = stepping.NewObserver(c.cfg, c.scorers[i])
	}
	c.active = true
	c.started = time.Now()

	c.logger.Info("run started",
		"run_id", c.runID,
		"workers", c.workers,
		"z_bins", c.cfg.ZBins,
		"e_bins", c.cfg.EBins)

	return c.runID, nil
}

// Observer returns the step handler bound to the given worker's accumulator.
// Each worker must use its own handler for the whole run.
func (c *Coordinator) Observer(worker int) (core.StepHandler, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.active {
		return nil, ErrNoActiveRun
	}
	if worker < 0 || worker >= len(c.observers) {
		return nil, fmt.Errorf("worker %d out of range [0,%d)", worker, len(c.observers))
	}

	return c.observers[worker], nil
}

// EndRun closes the active run: it merges all worker accumulators and hands
// the merged result to the writer.
//
// A run with zero processed activity is a recognized no-op and returns
// (nil, nil) without writing. A canceled context means the run was aborted
// externally; no output is produced, same as the zero-activity case. A failed
// write is reported through the returned error, but the returned result is
// still valid for in-memory consumers.
func (c *Coordinator) EndRun(ctx context.Context) (*core.RunResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return nil, ErrNoActiveRun
	}
	c.active = false

	if err := ctx.Err(); err != nil {
		c.logger.Warn("run aborted", "run_id", c.runID, "reason", err)
		return nil, err
	}

	for i, s := range c.scorers {
		ev, st := s.Activity()
		c.logger.Debug("worker activity", "run_id", c.runID, "worker", i, "events", ev, "steps", st)
	}

	mergeStart := time.Now()
	merged, err := scorer.Merge(c.scorers)
	if err != nil {
		return nil, fmt.Errorf("merge accumulators: %w", err)
	}

	result := &core.RunResult{
		RunID:     c.runID,
		Events:    merged.Events,
		Steps:     merged.Steps,
		Deposit:   merged.Deposit,
		Exits:     merged.Exits,
		Histogram: c.cfg,
	}

	if result.Empty() {
		c.logger.Info("run ended with zero activity, skipping artifacts", "run_id", c.runID)
		return nil, nil
	}

	c.logger.Info("run merged",
		"run_id", c.runID,
		"workers", len(c.scorers),
		"events", merged.Events,
		"steps", merged.Steps,
		"merge_duration", time.Since(mergeStart),
		"run_duration", time.Since(c.started))

	if err := c.writer.Write(result); err != nil {
		c.logger.Error("result write failed", "run_id", c.runID, "error", err)
		return result, fmt.Errorf("write result artifacts: %w", err)
	}

	return result, nil
}
