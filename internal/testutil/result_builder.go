package testutil

import (
	"github.com/hupe1980/scoremesh/core"
)

// ResultBuilder helps construct run results with fluent chaining for tests.
// Example:
//
//	result := NewResultBuilder("run-1").Histogram(cfg).Deposit(1, 2, 0).Build()
type ResultBuilder struct {
	runID     string
	events    uint64
	steps     uint64
	deposit   []float64
	exits     []uint64
	histogram core.HistogramConfig
}

// NewResultBuilder creates a new builder for a run result with the given run
// ID. Use chainable methods (Histogram, Activity, Deposit, Exits) then call
// Build.
func NewResultBuilder(runID string) *ResultBuilder {
	return &ResultBuilder{runID: runID, histogram: core.DefaultHistogram}
}

// Histogram sets the configuration the result was accumulated under
// (chainable).
func (b *ResultBuilder) Histogram(cfg core.HistogramConfig) *ResultBuilder {
	b.histogram = cfg
	return b
}

// Activity sets the event and step counters (chainable).
func (b *ResultBuilder) Activity(events, steps uint64) *ResultBuilder {
	b.events = events
	b.steps = steps
	return b
}

// Deposit sets the per-bin deposited energy in engine units (chainable). The
// caller is responsible for matching the histogram's spatial bin count.
func (b *ResultBuilder) Deposit(bins ...float64) *ResultBuilder {
	b.deposit = bins
	return b
}

// Exits sets the per-bin exit counts (chainable).
func (b *ResultBuilder) Exits(counts ...uint64) *ResultBuilder {
	b.exits = counts
	return b
}

// Build returns a *core.RunResult; unset bin slices are allocated zeroed from
// the histogram shape.
func (b *ResultBuilder) Build() *core.RunResult {
	deposit := b.deposit
	if deposit == nil {
		deposit = make([]float64, b.histogram.ZBins)
	}
	exits := b.exits
	if exits == nil {
		exits = make([]uint64, b.histogram.EBins)
	}

	return &core.RunResult{
		RunID:     b.runID,
		Events:    b.events,
		Steps:     b.steps,
		Deposit:   deposit,
		Exits:     exits,
		Histogram: b.histogram,
	}
}
