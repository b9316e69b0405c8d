package core

import "context"

// StepHandler consumes the step-event stream of one worker context. A
// transport engine binds one handler per worker and calls it synchronously
// from that worker's stepping loop.
//
// Semantics & Guarantees:
//   - BeginEvent marks the start of one primary history; engines without an
//     event hook may skip it, activity is then tracked per step.
//   - OnStep classifies and accumulates a single step. Out-of-range values
//     are silently dropped, never errors.
//   - Implementations MUST tolerate concurrent calls from callers sharing
//     the same worker context (interleaved tracks); calls from different
//     workers belong on different handlers.
type StepHandler interface {
	BeginEvent()
	OnStep(ev StepEvent)
}

// Coordinator owns the accumulator lifecycle of a run:
//   - StartRun validates the histogram configuration and allocates one
//     zeroed accumulator per worker. It must complete before any handler
//     is invoked.
//   - Observer exposes the step handler bound to one worker's accumulator.
//   - EndRun is called exactly once by the designated merging context after
//     the engine's run barrier, merges all workers into a RunResult and
//     dispatches it to the configured writer. A run without activity
//     produces no artifact and a nil result; a failed write still returns
//     the valid in-memory result alongside the error.
type Coordinator interface {
	// StartRun begins a new run, returning its assigned run ID.
	StartRun() (string, error)

	// Observer returns the handler bound to the given worker index.
	Observer(worker int) (StepHandler, error)

	// EndRun merges and persists. The context bounds the merge/write phase;
	// a cancelled context abandons the run like an external abort would.
	EndRun(ctx context.Context) (*RunResult, error)
}
