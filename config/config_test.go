package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/units"
	"github.com/stretchr/testify/assert"
)

const sampleYAML = `
particle:
  type: proton
  energy: 250
  energy_unit: MeV
  position: [0, 0, -10]
  direction: [0, 0, 1]

simulation:
  events: 50000
  workers: 8
  seed: 42
  output_dir: output/proton_250

scoring:
  energy_deposition:
    z_bins: 40
    z_range: [0, 4]
  neutron_spectrum:
    energy_bins: 60
    energy_range: [1.0e-9, 1.0]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	assert.NoError(t, err)

	assert.Equal(t, "proton", cfg.Particle.Type)
	assert.Equal(t, 250.0, cfg.Particle.Energy)
	assert.Equal(t, [3]float64{0, 0, -10}, cfg.Particle.Position)
	assert.Equal(t, 50000, cfg.Simulation.Events)
	assert.Equal(t, 8, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, "output/proton_250", cfg.Simulation.OutputDir)
	assert.Equal(t, 40, cfg.Scoring.EnergyDeposition.ZBins)
	assert.Equal(t, [2]float64{1e-9, 1}, cfg.Scoring.NeutronSpectrum.EnergyRange)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "simulation:\n  events: 7\n"))
	assert.NoError(t, err)

	assert.Equal(t, 7, cfg.Simulation.Events)
	// untouched sections keep their defaults
	assert.Equal(t, "neutron", cfg.Particle.Type)
	assert.Equal(t, 100, cfg.Scoring.EnergyDeposition.ZBins)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "particle: [not, a, mapping\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCOREMESH_EVENTS", "123")
	t.Setenv("SCOREMESH_OUTPUT_DIR", "/tmp/override")
	t.Setenv("SCOREMESH_PARTICLE", "photon")

	cfg, err := Load(writeConfig(t, sampleYAML))
	assert.NoError(t, err)
	assert.Equal(t, 123, cfg.Simulation.Events)
	assert.Equal(t, "/tmp/override", cfg.Simulation.OutputDir)
	assert.Equal(t, "photon", cfg.Particle.Type)
	// values without overrides stay as configured
	assert.Equal(t, 8, cfg.Simulation.Workers)
}

func TestParticle_Species(t *testing.T) {
	tests := []struct {
		in   string
		want core.Species
	}{
		{"neutron", core.Neutron},
		{"Proton", core.Proton},
		{"electron", core.Electron},
		{"positron", core.Positron},
		{"photon", core.Gamma},
	}
	for _, tt := range tests {
		s, err := Particle{Type: tt.in}.Species()
		assert.NoError(t, err)
		assert.Equal(t, tt.want, s)
	}

	_, err := Particle{Type: "tachyon"}.Species()
	assert.ErrorContains(t, err, "unknown particle type")
}

func TestParticle_EnergyMeV(t *testing.T) {
	tests := []struct {
		energy float64
		unit   string
		want   float64
	}{
		{14, "MeV", 14},
		{14, "mev", 14},
		{2, "GeV", 2000},
		{500, "keV", 0.5},
		{1e6, "eV", 1},
		{3, "", 3}, // defaults to MeV
	}
	for _, tt := range tests {
		got, err := Particle{Energy: tt.energy, EnergyUnit: tt.unit}.EnergyMeV()
		assert.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12)
	}

	_, err := Particle{Energy: 1, EnergyUnit: "joule"}.EnergyMeV()
	assert.ErrorContains(t, err, "unknown energy unit")
}

func TestConfig_Histogram(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	assert.NoError(t, err)

	h := cfg.Histogram()
	assert.Equal(t, 40, h.ZBins)
	assert.Equal(t, 0.0, h.ZMin)
	assert.Equal(t, 4*units.Cm, h.ZMax)
	assert.Equal(t, 60, h.EBins)
	assert.InDelta(t, 1e-9*units.GeV, h.EMin, 1e-18)
	assert.Equal(t, 1*units.GeV, h.EMax)
	assert.NoError(t, h.Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	bad := Default()
	bad.Particle.Type = "tachyon"
	assert.ErrorContains(t, bad.Validate(), "unknown particle type")

	bad = Default()
	bad.Particle.Energy = 0
	assert.ErrorContains(t, bad.Validate(), "energy must be positive")

	bad = Default()
	bad.Simulation.Events = 0
	assert.ErrorContains(t, bad.Validate(), "events must be >= 1")

	bad = Default()
	bad.Scoring.EnergyDeposition.ZBins = 0
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Scoring.NeutronSpectrum.EnergyRange = [2]float64{10, 1}
	assert.Error(t, bad.Validate())
}
