// Package config loads campaign configuration from YAML with environment
// overrides. Config units follow the file format conventions (cm for
// positions, GeV for spectrum ranges, explicit energy_unit for the beam);
// Histogram and EnergyMeV convert into engine units at the boundary so the
// hot path never touches unit factors.
package config
