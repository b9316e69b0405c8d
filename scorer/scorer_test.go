package scorer

import (
	"sync"
	"testing"

	"github.com/hupe1980/scoremesh/binning"
	"github.com/hupe1980/scoremesh/core"
	"github.com/stretchr/testify/assert"
)

func testConfig() core.HistogramConfig {
	return core.HistogramConfig{
		ZBins: 4, ZMin: 0, ZMax: 20,
		EBins: 3, EMin: 0.1, EMax: 100,
	}
}

func TestScorer_AddDeposit(t *testing.T) {
	s := New(testConfig())
	s.AddDeposit(0, 1.5)
	s.AddDeposit(0, 0.5)
	s.AddDeposit(3, 2.0)

	snap := s.Snapshot()
	assert.Equal(t, []float64{2.0, 0, 0, 2.0}, snap.Deposit)
}

func TestScorer_OutOfRangeIgnored(t *testing.T) {
	s := New(testConfig())
	s.AddDeposit(binning.OutOfRange, 5.0)
	s.AddDeposit(4, 5.0)
	s.AddDeposit(1000, 5.0)
	s.AddExit(binning.OutOfRange)
	s.AddExit(3)

	snap := s.Snapshot()
	assert.Equal(t, []float64{0, 0, 0, 0}, snap.Deposit)
	assert.Equal(t, []uint64{0, 0, 0}, snap.Exits)
}

func TestScorer_SnapshotIsolation(t *testing.T) {
	s := New(testConfig())
	s.AddDeposit(1, 3.0)
	s.AddExit(2)

	snap := s.Snapshot()
	snap.Deposit[1] = 99
	snap.Exits[2] = 99

	snap2 := s.Snapshot()
	assert.Equal(t, 3.0, snap2.Deposit[1])
	assert.Equal(t, uint64(1), snap2.Exits[2])
}

func TestScorer_Counters(t *testing.T) {
	s := New(testConfig())
	s.BeginEvent()
	s.BeginEvent()
	s.CountStep()
	s.CountStep()
	s.CountStep()

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Events)
	assert.Equal(t, uint64(3), snap.Steps)
}

func TestScorer_Concurrency(t *testing.T) {
	s := New(testConfig())
	var wg sync.WaitGroup
	const goroutines = 50
	const perGoroutine = 100
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				s.AddDeposit(j%4, 1.0)
				s.AddExit(j % 3)
				s.CountStep()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	var depositTotal float64
	for _, v := range snap.Deposit {
		depositTotal += v
	}
	var exitTotal uint64
	for _, v := range snap.Exits {
		exitTotal += v
	}
	assert.Equal(t, float64(goroutines*perGoroutine), depositTotal)
	assert.Equal(t, uint64(goroutines*perGoroutine), exitTotal)
	assert.Equal(t, uint64(goroutines*perGoroutine), snap.Steps)
}

func TestMerge_Totals(t *testing.T) {
	cfg := testConfig()
	a := New(cfg)
	b := New(cfg)
	c := New(cfg)

	a.BeginEvent()
	a.CountStep()
	a.AddDeposit(0, 1.0)
	a.AddExit(0)

	b.BeginEvent()
	b.CountStep()
	b.CountStep()
	b.AddDeposit(0, 2.0)
	b.AddDeposit(2, 4.0)
	b.AddExit(0)

	c.AddExit(2)

	merged, err := Merge([]*Scorer{a, b, c})
	assert.NoError(t, err)
	assert.Equal(t, []float64{3.0, 0, 4.0, 0}, merged.Deposit)
	assert.Equal(t, []uint64{2, 0, 1}, merged.Exits)
	assert.Equal(t, uint64(2), merged.Events)
	assert.Equal(t, uint64(3), merged.Steps)
}

func TestMerge_OrderIndependent(t *testing.T) {
	cfg := testConfig()
	build := func(vals []float64) *Scorer {
		s := New(cfg)
		for i, v := range vals {
			s.AddDeposit(i, v)
		}
		return s
	}
	a := build([]float64{1, 2, 3, 4})
	b := build([]float64{5, 0, 7, 0})
	c := build([]float64{0, 8, 0, 16})

	m1, err := Merge([]*Scorer{a, b, c})
	assert.NoError(t, err)
	m2, err := Merge([]*Scorer{c, a, b})
	assert.NoError(t, err)

	assert.Equal(t, m1.Deposit, m2.Deposit)
	assert.Equal(t, m1.Exits, m2.Exits)
}

func TestMerge_SizeMismatch(t *testing.T) {
	a := New(testConfig())
	b := New(core.HistogramConfig{ZBins: 8, ZMin: 0, ZMax: 20, EBins: 3, EMin: 0.1, EMax: 100})

	_, err := Merge([]*Scorer{a, b})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestMerge_MutationIsolation(t *testing.T) {
	cfg := testConfig()
	a := New(cfg)
	a.AddDeposit(0, 1.0)

	merged, err := Merge([]*Scorer{a})
	assert.NoError(t, err)
	merged.Deposit[0] = 99

	snap := a.Snapshot()
	assert.Equal(t, 1.0, snap.Deposit[0])
}

func TestMerge_Empty(t *testing.T) {
	merged, err := Merge(nil)
	assert.NoError(t, err)
	assert.Empty(t, merged.Deposit)
	assert.Zero(t, merged.Events)
}
