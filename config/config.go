package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/units"
)

// Config is the YAML configuration for a scoring campaign. The schema matches
// the comparison framework's simulation configs, so existing files keep
// working.
type Config struct {
	Particle   Particle   `yaml:"particle"`
	Simulation Simulation `yaml:"simulation"`
	Scoring    Scoring    `yaml:"scoring"`
}

// Particle describes the primary beam.
type Particle struct {
	Type       string     `yaml:"type"`
	Energy     float64    `yaml:"energy"`
	EnergyUnit string     `yaml:"energy_unit"`
	Position   [3]float64 `yaml:"position"`  // cm
	Direction  [3]float64 `yaml:"direction"` // unit vector
}

// Simulation describes the run size and execution parameters.
type Simulation struct {
	Events    int    `yaml:"events"`
	Workers   int    `yaml:"workers"` // 0 means one per CPU
	Seed      int64  `yaml:"seed"`    // 0 means time based
	OutputDir string `yaml:"output_dir"`
}

// Scoring describes the two histograms.
type Scoring struct {
	EnergyDeposition Deposition `yaml:"energy_deposition"`
	NeutronSpectrum  Spectrum   `yaml:"neutron_spectrum"`
}

// Deposition configures the spatial energy-deposition profile.
type Deposition struct {
	ZBins  int        `yaml:"z_bins"`
	ZRange [2]float64 `yaml:"z_range"` // cm
}

// Spectrum configures the neutron exit-energy spectrum.
type Spectrum struct {
	EnergyBins  int        `yaml:"energy_bins"`
	EnergyRange [2]float64 `yaml:"energy_range"` // GeV
}

// speciesByName maps config particle names onto engine species identifiers.
var speciesByName = map[string]core.Species{
	"neutron":  core.Neutron,
	"proton":   core.Proton,
	"electron": core.Electron,
	"positron": core.Positron,
	"photon":   core.Gamma,
}

// energyUnits maps config unit names onto engine unit factors.
var energyUnits = map[string]float64{
	"ev":  units.EV,
	"kev": units.KeV,
	"mev": units.MeV,
	"gev": units.GeV,
}

// Species returns the engine species for the configured particle type.
func (p Particle) Species() (core.Species, error) {
	s, ok := speciesByName[strings.ToLower(p.Type)]
	if !ok {
		return "", fmt.Errorf("unknown particle type: %s", p.Type)
	}
	return s, nil
}

// EnergyMeV returns the beam energy in engine units (MeV based).
func (p Particle) EnergyMeV() (float64, error) {
	unit := p.EnergyUnit
	if unit == "" {
		unit = "MeV"
	}
	factor, ok := energyUnits[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("unknown energy unit: %s", p.EnergyUnit)
	}
	return p.Energy * factor, nil
}

// Default returns the baseline configuration: a 14 MeV neutron beam against
// the default 2 cm scoring window with the canonical 100-bin histograms.
func Default() *Config {
	return &Config{
		Particle: Particle{
			Type:       "neutron",
			Energy:     14,
			EnergyUnit: "MeV",
			Position:   [3]float64{0, 0, -5},
			Direction:  [3]float64{0, 0, 1},
		},
		Simulation: Simulation{
			Events:    1000,
			Workers:   0,
			Seed:      0,
			OutputDir: "results",
		},
		Scoring: Scoring{
			EnergyDeposition: Deposition{
				ZBins:  100,
				ZRange: [2]float64{0, 2},
			},
			NeutronSpectrum: Spectrum{
				EnergyBins:  100,
				EnergyRange: [2]float64{1e-11, 10},
			},
		},
	}
}

// Load reads a configuration from a YAML file, falling back to defaults when
// the file does not exist, and applies SCOREMESH_* environment overrides on
// top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envOverrides holds raw environment values layered over the file config.
type envOverrides struct {
	Events     int     `env:"SCOREMESH_EVENTS"`
	Workers    int     `env:"SCOREMESH_WORKERS"`
	Seed       int64   `env:"SCOREMESH_SEED"`
	OutputDir  string  `env:"SCOREMESH_OUTPUT_DIR"`
	Particle   string  `env:"SCOREMESH_PARTICLE"`
	Energy     float64 `env:"SCOREMESH_ENERGY"`
	EnergyUnit string  `env:"SCOREMESH_ENERGY_UNIT"`
}

func (c *Config) applyEnvOverrides() error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if raw.Events > 0 {
		c.Simulation.Events = raw.Events
	}
	if raw.Workers > 0 {
		c.Simulation.Workers = raw.Workers
	}
	if raw.Seed != 0 {
		c.Simulation.Seed = raw.Seed
	}
	if raw.OutputDir != "" {
		c.Simulation.OutputDir = raw.OutputDir
	}
	if raw.Particle != "" {
		c.Particle.Type = raw.Particle
	}
	if raw.Energy > 0 {
		c.Particle.Energy = raw.Energy
	}
	if raw.EnergyUnit != "" {
		c.Particle.EnergyUnit = raw.EnergyUnit
	}

	return nil
}

// Validate checks the configuration for consistency. Histogram shape
// violations are also caught again at StartRun; validating here surfaces
// them before any work is scheduled.
func (c *Config) Validate() error {
	if _, err := c.Particle.Species(); err != nil {
		return err
	}
	if _, err := c.Particle.EnergyMeV(); err != nil {
		return err
	}
	if c.Particle.Energy <= 0 {
		return fmt.Errorf("particle energy must be positive, got %g", c.Particle.Energy)
	}
	if c.Simulation.Events < 1 {
		return fmt.Errorf("events must be >= 1, got %d", c.Simulation.Events)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Simulation.Workers)
	}

	return c.Histogram().Validate()
}

// Histogram converts the scoring block from config units (cm, GeV) into the
// engine-unit histogram configuration used for accumulation.
func (c *Config) Histogram() core.HistogramConfig {
	return core.HistogramConfig{
		ZBins: c.Scoring.EnergyDeposition.ZBins,
		ZMin:  c.Scoring.EnergyDeposition.ZRange[0] * units.Cm,
		ZMax:  c.Scoring.EnergyDeposition.ZRange[1] * units.Cm,
		EBins: c.Scoring.NeutronSpectrum.EnergyBins,
		EMin:  c.Scoring.NeutronSpectrum.EnergyRange[0] * units.GeV,
		EMax:  c.Scoring.NeutronSpectrum.EnergyRange[1] * units.GeV,
	}
}
