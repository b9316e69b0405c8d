package core

// Species identifies a particle kind using the transport engine's naming
// convention. The reduction layer only ever compares species by name; it
// attaches no physics meaning beyond identity.
type Species string

// Common species names as emitted by typical transport engines.
const (
	Neutron  Species = "neutron"
	Proton   Species = "proton"
	Gamma    Species = "gamma"
	Electron Species = "e-"
	Positron Species = "e+"
)

// Vec3 is a cartesian position in engine-internal length units.
type Vec3 struct {
	X, Y, Z float64
}

// StepEvent is the primary unit of communication between a transport engine
// and the reduction layer: one simulation step of one track. The engine owns
// all physics; the event is a plain record of what happened during the step.
// After emission it should be treated as immutable.
//
// Exited reports that the post-step location left the instrumented world,
// either by crossing the outer boundary or by entering a designated escape
// material; both detections are equally valid (see stepping.ExitPolicy).
// ExitKineticEnergy is meaningful only when Exited is true.
//
// All quantities are in engine-internal units (units package).
type StepEvent struct {
	Position          Vec3
	EnergyDeposit     float64
	Species           Species
	Exited            bool
	ExitKineticEnergy float64
}

// NewDepositStep constructs a step that deposited edep at pos.
func NewDepositStep(species Species, pos Vec3, edep float64) StepEvent {
	return StepEvent{Position: pos, EnergyDeposit: edep, Species: species}
}

// NewExitStep constructs a boundary-crossing step leaving the world with the
// given kinetic energy. Exit steps may additionally carry a deposit from the
// final step segment.
func NewExitStep(species Species, pos Vec3, kineticEnergy float64) StepEvent {
	return StepEvent{Position: pos, Species: species, Exited: true, ExitKineticEnergy: kineticEnergy}
}

// HasDeposit reports whether the step deposited any energy.
func (e StepEvent) HasDeposit() bool { return e.EnergyDeposit > 0 }

// IsExit reports whether the step left the world as the given species.
func (e StepEvent) IsExit(s Species) bool { return e.Exited && e.Species == s }
