// Package scoremesh provides a high-level façade over the run coordinator and
// scoring services (per-worker accumulators, artifact writing & logging)
// enabling rapid construction of step-event reduction pipelines. Most
// applications interact with this package by:
//  1. Creating a ScoreMesh via New() (optionally overriding the default in‑memory writer)
//  2. Starting a run and binding one step handler per transport worker (StartRun + Observer)
//  3. Ending the run (EndRun), which merges all workers and emits the text artifacts
//
// The façade delegates accumulator lifecycle to run.Coordinator while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a
// filesystem writer and a structured logger.
package scoremesh

import (
	"context"

	"github.com/hupe1980/scoremesh/artifact"
	"github.com/hupe1980/scoremesh/beam"
	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/logging"
	"github.com/hupe1980/scoremesh/run"
)

// Options configures the ScoreMesh instance.
type Options struct {
	// Histogram fixes the shape of the two run-level histograms: the spatial
	// deposition profile and the logarithmic exit-energy spectrum. Validated
	// at StartRun.
	Histogram core.HistogramConfig

	// Workers sets the number of per-worker accumulators allocated for each
	// run. More workers than transport goroutines is wasteful but harmless;
	// fewer is an error at Observer time. Set to 0 for one per CPU.
	Workers int

	// Writer persists merged run results (defaults to an in-memory writer
	// if not provided).
	Writer core.ResultWriter

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ScoreMesh is the high-level façade aggregating the run coordinator and the
// artifact service.
type ScoreMesh struct {
	opts  Options
	coord *run.Coordinator
}

// New creates a new ScoreMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *ScoreMesh {
	opts := Options{
		Histogram: core.DefaultHistogram,
		Writer:    artifact.NewMemoryWriter(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c := run.New(opts.Histogram, func(o *run.Options) {
		if opts.Workers > 0 {
			o.Workers = opts.Workers
		}
		o.Writer = opts.Writer
		o.Logger = opts.Logger
	})

	return &ScoreMesh{opts: opts, coord: c}
}

// Workers returns the number of per-worker accumulators allocated per run.
func (m *ScoreMesh) Workers() int { return m.coord.Workers() }

// StartRun begins a new run, allocating one zeroed accumulator per worker,
// and returns the assigned run ID.
func (m *ScoreMesh) StartRun() (string, error) { return m.coord.StartRun() }

// Observer returns the step handler bound to the given worker's accumulator.
func (m *ScoreMesh) Observer(worker int) (core.StepHandler, error) {
	return m.coord.Observer(worker)
}

// EndRun merges all worker accumulators into a single result and hands it to
// the configured writer. See run.Coordinator.EndRun for the zero-activity,
// abort and write-failure semantics.
func (m *ScoreMesh) EndRun(ctx context.Context) (*core.RunResult, error) {
	return m.coord.EndRun(ctx)
}

// Simulate is a synchronous helper that drives a complete run against the
// built-in synthetic beam: it starts a run, fires events primaries split
// across all workers and ends the run, returning the run ID and the merged
// result. Applications wiring a real transport engine use the StartRun /
// Observer / EndRun primitives directly instead.
func (m *ScoreMesh) Simulate(ctx context.Context, cfg beam.Config, events int) (string, *core.RunResult, error) {
	src, err := beam.New(cfg, func(o *beam.Options) {
		o.Logger = m.opts.Logger
	})
	if err != nil {
		return "", nil, err
	}

	runID, err := m.coord.StartRun()
	if err != nil {
		return "", nil, err
	}

	if err := src.Run(ctx, m.coord, events, m.coord.Workers()); err != nil {
		// Close the run out; with the context canceled this aborts it
		// without producing output.
		_, _ = m.coord.EndRun(ctx)
		return runID, nil, err
	}

	result, err := m.coord.EndRun(ctx)
	return runID, result, err
}
