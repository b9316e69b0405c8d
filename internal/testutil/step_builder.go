package testutil

import (
	"github.com/hupe1980/scoremesh/core"
)

// StepBuilder provides a fluent helper for constructing step events in tests.
// Example:
//
//	ev := NewStepBuilder().At(2.5).Deposit(0.25).Exit(0.5).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type StepBuilder struct {
	species core.Species
	pos     core.Vec3
	deposit float64
	exited  bool
	exitKE  float64
}

// NewStepBuilder creates a builder with default species neutron.
func NewStepBuilder() *StepBuilder { return &StepBuilder{species: core.Neutron} }

// Species sets the particle species for the step (chainable).
func (b *StepBuilder) Species(s core.Species) *StepBuilder { b.species = s; return b }

// At places the step on the beam axis at the given z coordinate (chainable).
func (b *StepBuilder) At(z float64) *StepBuilder { b.pos.Z = z; return b }

// Position sets the full pre-step position (chainable).
func (b *StepBuilder) Position(x, y, z float64) *StepBuilder {
	b.pos = core.Vec3{X: x, Y: y, Z: z}
	return b
}

// Deposit sets the energy deposited during the step (chainable).
func (b *StepBuilder) Deposit(edep float64) *StepBuilder { b.deposit = edep; return b }

// Exit marks the step as leaving the world with the given kinetic energy
// (chainable). A step may both deposit and exit.
func (b *StepBuilder) Exit(kineticEnergy float64) *StepBuilder {
	b.exited = true
	b.exitKE = kineticEnergy
	return b
}

// Build constructs the core.StepEvent value.
func (b *StepBuilder) Build() core.StepEvent {
	return core.StepEvent{
		Species:           b.species,
		Position:          b.pos,
		EnergyDeposit:     b.deposit,
		Exited:            b.exited,
		ExitKineticEnergy: b.exitKE,
	}
}
