package core

// ResultWriter persists the merged result of a completed run. Implementations
// decide the medium (filesystem, in-memory for tests); the canonical artifact
// format is fixed by the artifact package. A failed write is reported to the
// caller but must leave the in-memory RunResult untouched: persistence is a
// best-effort side channel, not the owner of the run's outcome.
//
// The interface lives in core so coordinators can depend on the contract
// without importing a concrete storage backend.
type ResultWriter interface {
	Write(result *RunResult) error
}
