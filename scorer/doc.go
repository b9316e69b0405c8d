// Package scorer holds the per-worker accumulation state for a run.
//
// Each worker owns exactly one Scorer for the lifetime of a run and feeds it
// binned observations; no cross-worker synchronization happens on the hot
// path. At end of run Merge folds all accumulators into a single Snapshot by
// bin-wise addition, an operation that is order independent so the worker
// count never changes the physics result, only the wall-clock time.
//
// The package deals only in bin indices and magnitudes. Mapping raw step
// observations onto bins is the job of the stepping package; axis geometry
// lives in binning.
package scorer
