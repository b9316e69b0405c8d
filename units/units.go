// Package units defines the engine-internal system of units used by all
// accumulation paths: lengths are expressed in millimeters and energies in
// MeV, mirroring the convention of common transport engines. Quantities are
// plain float64 values; multiplying by a unit constant converts into internal
// units, dividing converts back out:
//
//	zMax := 2 * units.Cm        // store internal
//	fmt.Println(z / units.Cm)   // print external
//
// Histograms accumulate raw internal units; only writers convert (cm, GeV)
// so the per-step hot path carries no conversions.
package units

// Length units (internal base: millimeter).
const (
	Mm = 1.0
	Cm = 10 * Mm
	M  = 1000 * Mm
	Um = 1e-3 * Mm
)

// Energy units (internal base: MeV).
const (
	MeV = 1.0
	EV  = 1e-6 * MeV
	KeV = 1e-3 * MeV
	GeV = 1000 * MeV
	TeV = 1e6 * MeV
)
