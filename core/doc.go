// Package core provides the foundational domain types and interfaces of
// scoremesh. It defines the core abstractions for:
//
//   - StepEvents (immutable per-step records handed over by a transport engine)
//   - HistogramConfig (the run-wide, immutable histogram shape)
//   - RunResult (the merged, order-independent outcome of a run)
//   - StepHandler / Coordinator (the contract between engine workers and the
//     reduction layer's run lifecycle)
//   - ResultWriter (pluggable persistence for the two run artifacts)
//
// The package intentionally keeps implementation concerns (accumulation,
// merging, artifact formats, host drivers) out of scope, exposing small
// interfaces so backends can be swapped without touching calling code.
package core
