package core

// RunResult is the element-wise sum of all per-worker accumulators of one
// run, produced exactly once by the merging context at end-of-run. The merge
// is commutative and associative: totals are independent of worker count and
// merge order (floating-point summation order may differ, so deposit sums
// agree within summation error rather than bit-for-bit).
//
// Quantities remain in engine-internal units; writers convert on output.
type RunResult struct {
	// RunID is the coordinator-assigned identifier of the producing run.
	RunID string

	// Events counts completed primary histories, Steps counts delivered step
	// events. A run with both at zero produced no output artifact.
	Events uint64
	Steps  uint64

	// Deposit holds summed energy per spatial bin (len = ZBins).
	Deposit []float64

	// Exits holds neutron exit counts per energy bin (len = EBins).
	Exits []uint64

	// Histogram is the configuration the run accumulated under.
	Histogram HistogramConfig
}

// Empty reports whether the run saw no activity at all. An empty run
// produces no artifacts; it is not an error.
func (r *RunResult) Empty() bool { return r.Events == 0 && r.Steps == 0 }

// TotalDeposit returns the energy summed over all spatial bins.
func (r *RunResult) TotalDeposit() float64 {
	var sum float64
	for _, d := range r.Deposit {
		sum += d
	}
	return sum
}

// TotalExits returns the exit count summed over all energy bins.
func (r *RunResult) TotalExits() uint64 {
	var sum uint64
	for _, n := range r.Exits {
		sum += n
	}
	return sum
}
