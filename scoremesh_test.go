package scoremesh

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scoremesh/artifact"
	"github.com/hupe1980/scoremesh/beam"
	"github.com/hupe1980/scoremesh/core"
)

func TestScoreMesh_Defaults(t *testing.T) {
	mesh := New()

	assert.GreaterOrEqual(t, mesh.Workers(), 1)

	runID, err := mesh.StartRun()
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	// No steps were processed, so the run closes as a no-op.
	result, err := mesh.EndRun(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestScoreMesh_ManualRun(t *testing.T) {
	writer := artifact.NewMemoryWriter()

	mesh := New(func(o *Options) {
		o.Histogram = core.HistogramConfig{
			ZBins: 4, ZMin: 0, ZMax: 4,
			EBins: 2, EMin: 0.1, EMax: 10,
		}
		o.Workers = 2
		o.Writer = writer
	})

	runID, err := mesh.StartRun()
	require.NoError(t, err)

	front, err := mesh.Observer(0)
	require.NoError(t, err)
	back, err := mesh.Observer(1)
	require.NoError(t, err)

	front.BeginEvent()
	front.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 0.5}, 1.0))
	front.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 1.5}, 1.0))

	back.BeginEvent()
	back.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 2.5}, 1.0))
	back.OnStep(core.NewDepositStep(core.Proton, core.Vec3{Z: 3.5}, 1.0))
	back.OnStep(core.NewExitStep(core.Neutron, core.Vec3{Z: 4}, 1.0))

	result, err := mesh.EndRun(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, runID, result.RunID)
	assert.Equal(t, []float64{1, 1, 1, 1}, result.Deposit)
	assert.Equal(t, []uint64{0, 1}, result.Exits)

	profile, err := writer.Get(runID, artifact.ProfileFilename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(profile), "# z_cm edep_GeV\n"))

	spectrum, err := writer.Get(runID, artifact.SpectrumFilename)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(spectrum), "# energy_GeV count\n"))
}

func TestScoreMesh_Simulate(t *testing.T) {
	writer := artifact.NewMemoryWriter()

	mesh := New(func(o *Options) {
		o.Histogram = core.HistogramConfig{
			ZBins: 20, ZMin: 0, ZMax: 20,
			EBins: 40, EMin: 1e-3, EMax: 20,
		}
		o.Workers = 4
		o.Writer = writer
	})

	cfg := beam.Config{
		Species:  core.Neutron,
		Energy:   14.0,
		StartZ:   -5,
		DirZ:     1,
		SlabZMin: 0,
		SlabZMax: 20,
		Seed:     42,
	}

	runID, result, err := mesh.Simulate(context.Background(), cfg, 200)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint64(200), result.Events)
	assert.Positive(t, result.TotalDeposit())

	// The merged artifacts must be on the writer under the returned run ID.
	names, err := writer.List(runID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{artifact.ProfileFilename, artifact.SpectrumFilename}, names)
}

func TestScoreMesh_SimulateCanceled(t *testing.T) {
	mesh := New(func(o *Options) {
		o.Histogram = core.HistogramConfig{
			ZBins: 10, ZMin: 0, ZMax: 10,
			EBins: 10, EMin: 0.1, EMax: 10,
		}
		o.Workers = 2
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := beam.Config{
		Species:  core.Neutron,
		Energy:   14.0,
		StartZ:   -5,
		DirZ:     1,
		SlabZMin: 0,
		SlabZMax: 10,
		Seed:     7,
	}

	_, result, err := mesh.Simulate(ctx, cfg, 100)
	require.Error(t, err)
	assert.Nil(t, result)

	// The aborted run must be fully released so a new one can start.
	_, err = mesh.StartRun()
	require.NoError(t, err)

	_, err = mesh.EndRun(context.Background())
	require.NoError(t, err)
}
