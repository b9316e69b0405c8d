package beam

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/scoremesh/core"
	"github.com/hupe1980/scoremesh/logging"
	"github.com/hupe1980/scoremesh/stepping"
)

// Config describes the synthetic beam and the slab it is fired at. All
// lengths and energies are in engine units.
type Config struct {
	// Species of the primary particles.
	Species core.Species
	// Energy of each primary at the gun.
	Energy float64
	// StartZ is the gun position along the beam axis.
	StartZ float64
	// DirZ is the beam direction along z; only its sign matters.
	DirZ float64
	// SlabZMin and SlabZMax bound the absorbing slab. Whatever lies beyond
	// the slab on the exit side swallows escaping tracks.
	SlabZMin, SlabZMax float64
	// Seed for the per-worker random streams. Zero means time based.
	Seed int64
}

// Options holds overrides passed to New().
type Options struct {
	// Logger receives per-run diagnostics.
	Logger logging.Logger
	// Backstop names an escape material filling the world behind the slab's
	// exit face. When empty the exit face opens directly onto the world
	// boundary; either way a track crossing it has left the geometry.
	Backstop string
}

// Source is a deterministic synthetic step-event generator: a degraded-energy
// random walk through a one-dimensional slab. It stands in for a transport
// engine so the reduction pipeline can be exercised end to end without one.
//
// The model is intentionally crude physics: exponential path lengths,
// fractional energy loss per collision, forward-only transport. What it
// preserves is the event stream's shape: zero-deposit transport steps,
// in-range and out-of-range deposits, absorbed tracks, and escaping tracks
// whose final step both deposits and exits.
type Source struct {
	cfg      Config
	meanPath float64
	cutoff   float64
	policy   stepping.ExitPolicy
	backstop string
	logger   logging.Logger
}

// Energy fraction lost per collision is drawn uniformly from this window.
const (
	lossFracMin = 0.15
	lossFracMax = 0.5
)

// New validates the beam configuration and builds a source.
func New(cfg Config, optFns ...func(o *Options)) (*Source, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if cfg.Species == "" {
		return nil, fmt.Errorf("beam species must be set")
	}
	if cfg.Energy <= 0 {
		return nil, fmt.Errorf("beam energy must be positive, got %g", cfg.Energy)
	}
	if cfg.SlabZMin >= cfg.SlabZMax {
		return nil, fmt.Errorf("slab range [%g, %g) is empty", cfg.SlabZMin, cfg.SlabZMax)
	}
	if cfg.DirZ == 0 {
		return nil, fmt.Errorf("beam direction must have a z component")
	}

	policy := stepping.ExitPolicy{}
	if opts.Backstop != "" {
		policy.EscapeMaterials = []string{opts.Backstop}
	}

	thickness := cfg.SlabZMax - cfg.SlabZMin

	return &Source{
		cfg:      cfg,
		meanPath: thickness / 6,
		cutoff:   cfg.Energy * 1e-4,
		policy:   policy,
		backstop: opts.Backstop,
		logger:   core.EnsureLogger(opts.Logger),
	}, nil
}

// Run fires events primaries split across workers worker goroutines, feeding
// each worker's steps into the handler the coordinator assigned to it. The
// split is even with the remainder spread over the first workers. Run blocks
// until every worker finished or the context is canceled.
func (s *Source) Run(ctx context.Context, coord core.Coordinator, events, workers int) error {
	if workers < 1 {
		workers = 1
	}

	handlers := make([]core.StepHandler, workers)
	for w := 0; w < workers; w++ {
		h, err := coord.Observer(w)
		if err != nil {
			return fmt.Errorf("worker %d handler: %w", w, err)
		}
		handlers[w] = h
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	per := events / workers
	rem := events % workers

	s.logger.Info("beam started",
		"species", string(s.cfg.Species),
		"events", events,
		"workers", workers,
		"seed", seed)

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		count := per
		if w < rem {
			count++
		}
		wid := w
		n := count
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(wid)))
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				s.runEvent(handlers[wid], rng)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info("beam finished", "events", events, "duration", time.Since(start))

	return nil
}

// runEvent walks one primary from the gun through the slab until it is
// absorbed or escapes.
func (s *Source) runEvent(h core.StepHandler, rng *rand.Rand) {
	h.BeginEvent()

	z := s.cfg.StartZ
	e := s.cfg.Energy
	dir := 1.0
	if s.cfg.DirZ < 0 {
		dir = -1.0
	}

	// ballistic flight through the entrance vacuum, one zero-deposit step
	entry := s.cfg.SlabZMin
	if dir < 0 {
		entry = s.cfg.SlabZMax
	}
	if (dir > 0 && z < entry) || (dir < 0 && z > entry) {
		h.OnStep(core.StepEvent{Species: s.cfg.Species, Position: core.Vec3{Z: z}})
		z = entry
	}

	for {
		preZ := z
		z += dir * s.meanPath * rng.ExpFloat64()
		exited := z < s.cfg.SlabZMin || z >= s.cfg.SlabZMax

		deposit := e * (lossFracMin + (lossFracMax-lossFracMin)*rng.Float64())
		if !exited && e-deposit < s.cutoff {
			deposit = e // absorbed: the track dumps its remaining energy
		}
		e -= deposit

		ev := core.StepEvent{
			Species:       s.cfg.Species,
			Position:      core.Vec3{Z: preZ},
			EnergyDeposit: deposit,
		}
		if exited {
			postVolume, postMaterial := "", ""
			if s.backstop != "" {
				postVolume, postMaterial = "backstop", s.backstop
			}
			ev.Exited = s.policy.Exited(postVolume, postMaterial)
			ev.ExitKineticEnergy = e
		}
		h.OnStep(ev)

		if exited || e <= 0 {
			return
		}
	}
}
