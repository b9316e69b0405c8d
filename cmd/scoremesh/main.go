package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/scoremesh"
	"github.com/hupe1980/scoremesh/artifact"
	"github.com/hupe1980/scoremesh/beam"
	"github.com/hupe1980/scoremesh/compare"
	"github.com/hupe1980/scoremesh/config"
	"github.com/hupe1980/scoremesh/logging"
	"github.com/hupe1980/scoremesh/units"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// run flags
	outputDir string
	events    int
	workers   int
	seed      int64
	backstop  string

	// compare flags
	tolerance float64

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scoremesh",
	Short: "scoremesh - step-event reduction for particle transport runs",
	Long: `scoremesh reduces the step-event stream of a particle transport run into
two run-level observables: a spatial energy-deposition profile and a
neutron exit-energy spectrum, written as plain-text artifacts.

The run command drives the built-in synthetic beam through the full
reduction pipeline; compare checks two artifact files against each
other bin by bin for regression gating.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd drives a full simulation run
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the synthetic beam and write the reduction artifacts",
	Long: `Fires the configured primary beam through the slab, reduces the step
stream into the two run-level histograms and writes them as text files:

  1. Load the YAML config (missing file falls back to defaults),
     apply SCOREMESH_* environment and command-line overrides
  2. Start a run and fan the beam out over the worker accumulators
  3. Merge all workers and write edep_profile.dat / neutron_spectrum.dat`,
	RunE: runSimulation,
}

// compareCmd gates two artifact files against each other
var compareCmd = &cobra.Command{
	Use:   "compare [reference] [test]",
	Short: "Compare two artifact files bin by bin",
	Long: `Reads two artifact files produced by run (or by another code writing the
same two-column format), verifies they share a bin grid and reports the
maximum relative per-bin difference. Exits non-zero when the difference
exceeds the tolerance.

Example:
  scoremesh compare reference/edep_profile.dat results/edep_profile.dat`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

// initCmd scaffolds a starter config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to start from",
	RunE:  runInit,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scoremesh.yaml", "Path to YAML config file")

	// Run flags
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for artifacts (overrides config)")
	runCmd.Flags().IntVarP(&events, "events", "n", 0, "Number of primary events (overrides config)")
	runCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker goroutines, 0 = one per CPU (overrides config)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 = time based (overrides config)")
	runCmd.Flags().StringVar(&backstop, "backstop", "", "Escape material behind the slab's exit face")

	// Compare flags
	compareCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 0.01, "Maximum allowed relative per-bin difference")

	// Add commands to root
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runSimulation executes one complete run: config, beam, merge, artifacts.
func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Command-line overrides sit on top of file + environment.
	if cmd.Flags().Changed("events") {
		cfg.Simulation.Events = events
	}
	if cmd.Flags().Changed("workers") {
		cfg.Simulation.Workers = workers
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if cmd.Flags().Changed("output") {
		cfg.Simulation.OutputDir = outputDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	species, err := cfg.Particle.Species()
	if err != nil {
		return err
	}
	energy, err := cfg.Particle.EnergyMeV()
	if err != nil {
		return err
	}

	meshLogger := logging.NewZapAdapter(logger)

	mesh := scoremesh.New(func(o *scoremesh.Options) {
		o.Histogram = cfg.Histogram()
		o.Workers = cfg.Simulation.Workers
		o.Writer = artifact.NewFSWriter(cfg.Simulation.OutputDir, func(wo *artifact.FSWriterOptions) {
			wo.Logger = meshLogger
		})
		o.Logger = meshLogger
	})

	src, err := beam.New(beam.Config{
		Species:  species,
		Energy:   energy,
		StartZ:   cfg.Particle.Position[2] * units.Cm,
		DirZ:     cfg.Particle.Direction[2],
		SlabZMin: cfg.Scoring.EnergyDeposition.ZRange[0] * units.Cm,
		SlabZMax: cfg.Scoring.EnergyDeposition.ZRange[1] * units.Cm,
		Seed:     cfg.Simulation.Seed,
	}, func(o *beam.Options) {
		o.Logger = meshLogger
		o.Backstop = backstop
	})
	if err != nil {
		return fmt.Errorf("configure beam: %w", err)
	}

	start := time.Now()

	runID, err := mesh.StartRun()
	if err != nil {
		return err
	}
	logger.Info("simulation started",
		zap.String("run_id", runID),
		zap.String("particle", string(species)),
		zap.Int("events", cfg.Simulation.Events),
		zap.Int("workers", mesh.Workers()))

	if err := src.Run(ctx, mesh, cfg.Simulation.Events, mesh.Workers()); err != nil {
		// Close the aborted run out before reporting.
		_, _ = mesh.EndRun(ctx)
		return fmt.Errorf("transport: %w", err)
	}

	result, err := mesh.EndRun(ctx)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("run produced no activity; nothing written")
		return nil
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	fmt.Printf("run %s: %d events, %d steps in %s\n", result.RunID, result.Events, result.Steps, elapsed)
	fmt.Printf("  deposited energy  %.6g GeV\n", result.TotalDeposit()/units.GeV)
	fmt.Printf("  neutron exits     %d\n", result.TotalExits())
	fmt.Printf("  artifacts         %s/{%s,%s}\n", cfg.Simulation.OutputDir, artifact.ProfileFilename, artifact.SpectrumFilename)

	return nil
}

// runCompare reads two artifact files and gates the test one against the
// reference.
func runCompare(cmd *cobra.Command, args []string) error {
	ref, err := compare.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	test, err := compare.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("test: %w", err)
	}

	result, err := compare.Compare(ref, test)
	if err != nil {
		return err
	}

	fmt.Printf("bins              %d\n", ref.Len())
	fmt.Printf("reference sum     %.6g\n", result.RefSum)
	fmt.Printf("test sum          %.6g\n", result.TestSum)
	fmt.Printf("max rel diff      %.4g\n", result.MaxRelDiff)

	if !result.Within(tolerance) {
		return fmt.Errorf("max relative difference %.4g exceeds tolerance %.4g", result.MaxRelDiff, tolerance)
	}

	fmt.Printf("within tolerance  %.4g\n", tolerance)
	return nil
}

// runInit writes the default config as a starting point.
func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file %s already exists", configPath)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote default config to %s\n", configPath)
	return nil
}
