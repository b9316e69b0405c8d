// Package binning maps continuous coordinates onto discrete histogram bins.
//
// Two scales are supported: linear (spatial profiles) and base-10 logarithmic
// (energy spectra). Both mappings are pure functions over half-open ranges
// [Min, Max): a value exactly at Max is out of range. Out-of-range lookups
// return the OutOfRange sentinel rather than an error; callers decide whether
// a dropped value matters.
//
// The axis types also reconstruct bin-center coordinates. Writers must use
// these centers rather than re-deriving their own so that the read and write
// paths can never disagree about where a bin lives.
package binning

import "math"

// OutOfRange is returned for values outside the binnable range.
const OutOfRange = -1

// LinearBin maps v onto one of n equal-width bins spanning [min, max).
// Returns OutOfRange when v < min or v >= max.
func LinearBin(v, min, max float64, n int) int {
	if v < min || v >= max {
		return OutOfRange
	}
	idx := int((v - min) / (max - min) * float64(n))
	if idx >= n {
		// v < max, so an index of n can only be produced by rounding.
		idx = n - 1
	}
	return idx
}

// logSnap is the relative slack within which a scaled log ratio is treated
// as sitting exactly on a bin edge. math.Log10 is not correctly rounded
// (Log10(0.1) is one ulp above -1), so a value on a decade boundary can
// scale to just under the next integer and truncate into the wrong bin.
const logSnap = 1e-12

// LogBin maps v onto one of n log10-equidistant bins spanning [min, max).
// Returns OutOfRange when v <= 0, v < min or v >= max. A value sitting
// exactly on a bin edge belongs to the bin above it, matching the half-open
// convention of LinearBin.
func LogBin(v, min, max float64, n int) int {
	if v <= 0 || v < min || v >= max {
		return OutOfRange
	}
	logMin := math.Log10(min)
	logMax := math.Log10(max)
	scaled := (math.Log10(v) - logMin) / (logMax - logMin) * float64(n)
	if edge := math.Round(scaled); math.Abs(scaled-edge) <= logSnap*math.Max(edge, 1) {
		scaled = edge
	}
	idx := int(scaled)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Linear is an equal-width axis over [Min, Max) with N bins.
type Linear struct {
	Min, Max float64
	N        int
}

// Bin returns the bin index for v, or OutOfRange.
func (a Linear) Bin(v float64) int { return LinearBin(v, a.Min, a.Max, a.N) }

// Width returns the width of one bin.
func (a Linear) Width() float64 { return (a.Max - a.Min) / float64(a.N) }

// Center returns the midpoint coordinate of bin i.
func (a Linear) Center(i int) float64 { return a.Min + (float64(i)+0.5)*a.Width() }

// Log is a base-10 logarithmic axis over [Min, Max) with N bins.
type Log struct {
	Min, Max float64
	N        int
}

// Bin returns the bin index for v, or OutOfRange.
func (a Log) Bin(v float64) int { return LogBin(v, a.Min, a.Max, a.N) }

// DecadeWidth returns the log10 width of one bin.
func (a Log) DecadeWidth() float64 {
	return (math.Log10(a.Max) - math.Log10(a.Min)) / float64(a.N)
}

// Center returns the geometric midpoint coordinate of bin i.
func (a Log) Center(i int) float64 {
	return math.Pow(10, math.Log10(a.Min)+(float64(i)+0.5)*a.DecadeWidth())
}
