package core

import (
	"fmt"

	"github.com/hupe1980/scoremesh/binning"
	"github.com/hupe1980/scoremesh/units"
)

// HistogramConfig fixes the shape of the two run-level histograms: an
// equal-width spatial axis for the deposition profile and a log10 axis for
// the exit-energy spectrum. It is set once at StartRun and immutable for the
// duration of the run; every per-worker accumulator is sized from it.
//
// Ranges are half-open [Min, Max) in engine-internal units.
type HistogramConfig struct {
	// Spatial axis of the deposition profile (z coordinate).
	ZBins int
	ZMin  float64
	ZMax  float64

	// Logarithmic energy axis of the exit spectrum.
	EBins int
	EMin  float64
	EMax  float64
}

// DefaultHistogram mirrors the conventional scoring setup: 100 spatial bins
// across [0, 2 cm) and 100 log bins across [1e-11, 10) GeV.
var DefaultHistogram = HistogramConfig{
	ZBins: 100,
	ZMin:  0,
	ZMax:  2 * units.Cm,
	EBins: 100,
	EMin:  1e-11 * units.GeV,
	EMax:  10 * units.GeV,
}

// Validate checks the structural invariants a run must not start without.
func (c HistogramConfig) Validate() error {
	if c.ZBins <= 0 {
		return fmt.Errorf("histogram config: spatial bins must be positive, got %d", c.ZBins)
	}
	if c.EBins <= 0 {
		return fmt.Errorf("histogram config: energy bins must be positive, got %d", c.EBins)
	}
	if c.ZMin >= c.ZMax {
		return fmt.Errorf("histogram config: spatial range [%g, %g) is empty", c.ZMin, c.ZMax)
	}
	if c.EMin <= 0 {
		return fmt.Errorf("histogram config: energy range must be positive, got min %g", c.EMin)
	}
	if c.EMin >= c.EMax {
		return fmt.Errorf("histogram config: energy range [%g, %g) is empty", c.EMin, c.EMax)
	}
	return nil
}

// ZAxis returns the spatial binning axis. Accumulation and artifact writing
// must both go through this axis so bin centers and edges cannot diverge.
func (c HistogramConfig) ZAxis() binning.Linear {
	return binning.Linear{Min: c.ZMin, Max: c.ZMax, N: c.ZBins}
}

// EAxis returns the logarithmic energy axis.
func (c HistogramConfig) EAxis() binning.Log {
	return binning.Log{Min: c.EMin, Max: c.EMax, N: c.EBins}
}
