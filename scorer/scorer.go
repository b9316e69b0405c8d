package scorer

import (
	"sync"

	"github.com/hupe1980/scoremesh/core"
)

// Scorer is a per-worker accumulator holding one energy-deposition profile
// and one exit-energy spectrum. It is safe for concurrent use: a worker
// context may interleave steps from multiple tracks, so every mutation takes
// the lock. Workers never share a Scorer; cross-worker aggregation happens
// once at end of run via Merge.
type Scorer struct {
	mu      sync.RWMutex
	deposit []float64
	exits   []uint64
	events  uint64
	steps   uint64
}

// New constructs a zeroed accumulator sized for the given histogram
// configuration. The configuration is assumed to be validated by the caller.
func New(cfg core.HistogramConfig) *Scorer {
	return &Scorer{
		deposit: make([]float64, cfg.ZBins),
		exits:   make([]uint64, cfg.EBins),
	}
}

// BeginEvent records the start of one primary event.
func (s *Scorer) BeginEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events++
}

// CountStep records that one step was observed, scored or not.
func (s *Scorer) CountStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps++
}

// AddDeposit adds an energy deposit to the given spatial bin. Out-of-range
// bins (including binning.OutOfRange) are ignored, so callers can feed the
// bin index straight from an axis lookup.
func (s *Scorer) AddDeposit(bin int, edep float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bin < 0 || bin >= len(s.deposit) {
		return
	}
	s.deposit[bin] += edep
}

// AddExit counts one exit in the given spectrum bin. Out-of-range bins are
// ignored.
func (s *Scorer) AddExit(bin int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bin < 0 || bin >= len(s.exits) {
		return
	}
	s.exits[bin]++
}

// Activity returns the event and step counts without copying histogram
// contents. Coordinators report it per worker when diagnosing uneven
// load.
func (s *Scorer) Activity() (events, steps uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events, s.steps
}

// Snapshot is an immutable copy of an accumulator's state at one point in
// time.
type Snapshot struct {
	Deposit []float64
	Exits   []uint64
	Events  uint64
	Steps   uint64
}

// Snapshot returns a deep copy of the current state. The copy prevents
// external mutation of internal slices while workers are still stepping.
func (s *Scorer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Deposit: append([]float64(nil), s.deposit...),
		Exits:   append([]uint64(nil), s.exits...),
		Events:  s.events,
		Steps:   s.steps,
	}
}

// Merge folds the per-worker accumulators into a single snapshot by bin-wise
// addition. The operation is order independent, so the worker count and
// scheduling cannot change the merged result. Accumulators with differing
// histogram sizes yield ErrSizeMismatch.
func Merge(scorers []*Scorer) (Snapshot, error) {
	if len(scorers) == 0 {
		return Snapshot{}, nil
	}

	first := scorers[0].Snapshot()
	merged := Snapshot{
		Deposit: first.Deposit,
		Exits:   first.Exits,
		Events:  first.Events,
		Steps:   first.Steps,
	}

	for _, s := range scorers[1:] {
		snap := s.Snapshot()
		if len(snap.Deposit) != len(merged.Deposit) || len(snap.Exits) != len(merged.Exits) {
			return Snapshot{}, ErrSizeMismatch
		}
		for i, v := range snap.Deposit {
			merged.Deposit[i] += v
		}
		for i, v := range snap.Exits {
			merged.Exits[i] += v
		}
		merged.Events += snap.Events
		merged.Steps += snap.Steps
	}

	return merged, nil
}
