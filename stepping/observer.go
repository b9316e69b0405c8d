package stepping

import (
	"github.com/hupe1980/scoremesh/binning"
	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/scorer"
)

// Observer maps raw step events onto histogram bins and feeds them to a
// per-worker accumulator. It implements core.StepHandler.
//
// Scoring rules per step:
//   - A positive energy deposit is added to the spatial bin of the step's
//     position. Deposits outside the z range are dropped.
//   - A neutron leaving the geometry is counted in the spectrum bin of its
//     exit kinetic energy. Exits outside the energy range are dropped.
//
// Both rules are evaluated independently, so a single step can contribute to
// the profile and to the spectrum.
type Observer struct {
	scorer *scorer.Scorer
	zAxis  binning.Linear
	eAxis  binning.Log
}

// NewObserver binds an accumulator to the histogram geometry derived from cfg.
func NewObserver(cfg core.HistogramConfig, sc *scorer.Scorer) *Observer {
	return &Observer{
		scorer: sc,
		zAxis:  cfg.ZAxis(),
		eAxis:  cfg.EAxis(),
	}
}

// BeginEvent marks the start of a new primary event on the bound accumulator.
func (o *Observer) BeginEvent() {
	o.scorer.BeginEvent()
}

// OnStep scores a single step.
func (o *Observer) OnStep(ev core.StepEvent) {
	o.scorer.CountStep()

	if ev.HasDeposit() {
		o.scorer.AddDeposit(o.zAxis.Bin(ev.Position.Z), ev.EnergyDeposit)
	}

	if ev.IsExit(core.Neutron) {
		o.scorer.AddExit(o.eAxis.Bin(ev.ExitKineticEnergy))
	}
}
