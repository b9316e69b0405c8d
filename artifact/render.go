package artifact

import (
	"bytes"
	"strconv"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/units"
)

// Canonical artifact names. Downstream analysis tooling looks these up by
// name, so they are part of the output contract.
const (
	ProfileFilename  = "edep_profile.dat"
	SpectrumFilename = "neutron_spectrum.dat"
)

// RenderProfile renders the energy-deposition profile as two whitespace
// separated columns: bin center in cm and deposited energy in GeV. Lines
// starting with '#' are comments.
//
// Accumulation happens in engine units; conversion to reporting units (cm,
// GeV) happens here and only here.
func RenderProfile(result *core.RunResult) []byte {
	var buf bytes.Buffer
	buf.WriteString("# z_cm edep_GeV\n")

	axis := result.Histogram.ZAxis()
	for i, edep := range result.Deposit {
		buf.WriteString(formatFloat(axis.Center(i) / units.Cm))
		buf.WriteByte(' ')
		buf.WriteString(formatFloat(edep / units.GeV))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// RenderSpectrum renders the neutron exit spectrum as two whitespace
// separated columns: log-space bin center in GeV and exit count.
func RenderSpectrum(result *core.RunResult) []byte {
	var buf bytes.Buffer
	buf.WriteString("# energy_GeV count\n")

	axis := result.Histogram.EAxis()
	for i, count := range result.Exits {
		buf.WriteString(formatFloat(axis.Center(i) / units.GeV))
		buf.WriteByte(' ')
		buf.WriteString(strconv.FormatUint(count, 10))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// formatFloat uses the shortest representation that round-trips, so read-back
// comparison against in-memory results is exact.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
