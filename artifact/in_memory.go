package artifact

import (
	"sync"

	"github.com/hupe1980/scoremesh/core"
)

// MemoryWriter is an in-process core.ResultWriter useful for tests, examples
// and embedded use where no files should touch disk. It renders the same
// artifact bytes the durable writer would produce and keeps them in a nested
// map guarded by an RWMutex. Data is copied on retrieval to avoid accidental
// external mutation of internal buffers.
//
// Layout: runID -> artifact name -> raw bytes
type MemoryWriter struct {
	mu        sync.RWMutex
	artifacts map[string]map[string][]byte
}

// NewMemoryWriter returns an empty in-memory result writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{artifacts: make(map[string]map[string][]byte)}
}

// Write renders both artifacts for the result and stores them under the
// result's run id. Re-writing the same run overwrites previous artifacts.
func (m *MemoryWriter) Write(result *core.RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[result.RunID] = map[string][]byte{
		ProfileFilename:  RenderProfile(result),
		SpectrumFilename: RenderSpectrum(result),
	}
	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (m *MemoryWriter) Get(runID, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.artifacts[runID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := run[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the artifact names stored for the run. The slice is a snapshot
// and safe for caller mutation.
func (m *MemoryWriter) List(runID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.artifacts[runID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(run))
	for name := range run {
		names = append(names, name)
	}
	return names, nil
}
