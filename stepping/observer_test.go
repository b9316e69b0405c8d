package stepping

import (
	"testing"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/internal/testutil"
	"github.com/hupe1980/scoremesh/scorer"
	"github.com/stretchr/testify/assert"
)

// Interface compliance (compile-time assertion)
var _ core.StepHandler = (*Observer)(nil)

func testConfig() core.HistogramConfig {
	return core.HistogramConfig{
		ZBins: 4, ZMin: 0, ZMax: 20,
		EBins: 2, EMin: 0.1, EMax: 10,
	}
}

func TestObserver_DepositBinning(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	// one deposit at the center of each of the four bins
	for _, z := range []float64{2.5, 7.5, 12.5, 17.5} {
		obs.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: z}, 1.0))
	}

	snap := sc.Snapshot()
	assert.Equal(t, []float64{1, 1, 1, 1}, snap.Deposit)
	assert.Equal(t, uint64(4), snap.Steps)
}

func TestObserver_DepositOutsideRangeDropped(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: -1}, 1.0))
	obs.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 20.0}, 1.0)) // upper edge is exclusive
	obs.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 25}, 1.0))

	snap := sc.Snapshot()
	assert.Equal(t, []float64{0, 0, 0, 0}, snap.Deposit)
	assert.Equal(t, uint64(3), snap.Steps)
}

func TestObserver_ZeroDepositCountedNotScored(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.OnStep(testutil.NewStepBuilder().Species(core.Proton).At(2.5).Build())

	snap := sc.Snapshot()
	assert.Equal(t, []float64{0, 0, 0, 0}, snap.Deposit)
	assert.Equal(t, uint64(1), snap.Steps)
}

func TestObserver_NeutronExitSpectrum(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	// 1.0 sits exactly on the decade boundary between the two bins and must
	// land in the upper one.
	obs.OnStep(core.NewExitStep(core.Neutron, core.Vec3{Z: 25}, 1.0))
	obs.OnStep(core.NewExitStep(core.Neutron, core.Vec3{Z: 25}, 0.5))

	snap := sc.Snapshot()
	assert.Equal(t, []uint64{1, 1}, snap.Exits)
}

func TestObserver_NonNeutronExitIgnored(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.OnStep(core.NewExitStep(core.Proton, core.Vec3{Z: 25}, 1.0))
	obs.OnStep(core.NewExitStep(core.Gamma, core.Vec3{Z: 25}, 1.0))

	snap := sc.Snapshot()
	assert.Equal(t, []uint64{0, 0}, snap.Exits)
	assert.Equal(t, uint64(2), snap.Steps)
}

func TestObserver_ExitOutsideSpectrumDropped(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.OnStep(core.NewExitStep(core.Neutron, core.Vec3{}, 0.05)) // below EMin
	obs.OnStep(core.NewExitStep(core.Neutron, core.Vec3{}, 10.0)) // upper edge is exclusive
	obs.OnStep(core.NewExitStep(core.Neutron, core.Vec3{}, 0))

	snap := sc.Snapshot()
	assert.Equal(t, []uint64{0, 0}, snap.Exits)
}

func TestObserver_DepositAndExitSameStep(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.OnStep(testutil.NewStepBuilder().At(17.5).Deposit(0.25).Exit(0.5).Build())

	snap := sc.Snapshot()
	assert.Equal(t, []float64{0, 0, 0, 0.25}, snap.Deposit)
	assert.Equal(t, []uint64{1, 0}, snap.Exits)
}

func TestObserver_BeginEvent(t *testing.T) {
	cfg := testConfig()
	sc := scorer.New(cfg)
	obs := NewObserver(cfg, sc)

	obs.BeginEvent()
	obs.BeginEvent()

	snap := sc.Snapshot()
	assert.Equal(t, uint64(2), snap.Events)
}

func TestExitPolicy(t *testing.T) {
	tests := []struct {
		name         string
		policy       ExitPolicy
		postVolume   string
		postMaterial string
		want         bool
	}{
		{"world exit", ExitPolicy{}, "", "", true},
		{"inside geometry", ExitPolicy{}, "slab", "BPE", false},
		{"escape material", ExitPolicy{EscapeMaterials: []string{"blackhole"}}, "world", "blackhole", true},
		{"other material", ExitPolicy{EscapeMaterials: []string{"blackhole"}}, "world", "vacuum", false},
		{"world exit beats material list", ExitPolicy{EscapeMaterials: []string{"blackhole"}}, "", "vacuum", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Exited(tt.postVolume, tt.postMaterial))
		})
	}
}
