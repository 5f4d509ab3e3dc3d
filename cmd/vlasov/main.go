// Command vlasov runs the 1-D free-streaming loop: advance phase
// points, wrap them into the periodic domain, and deposit their
// density on the grid. Status, CSV telemetry, and compressed
// snapshots are emitted along the way.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/vlasov/config"
	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
	"github.com/pthm-cable/vlasov/sim"
	"github.com/pthm-cable/vlasov/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	steps := flag.Int("steps", -1, "Number of steps to run (-1 = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed for random loading (0 = use config, then time-based)")
	workers := flag.Int("workers", -1, "Worker goroutines (-1 = use config, 0 = all cores, 1 = serial)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config dump (empty = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files (empty = use config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI flags override the config file.
	if *steps >= 0 {
		cfg.Time.Steps = *steps
	}
	if *seed != 0 {
		cfg.Plasma.Seed = *seed
	}
	if *workers >= 0 {
		cfg.Run.Workers = *workers
	}
	if *outputDir != "" {
		cfg.Run.OutputDir = *outputDir
	}
	if *snapshotDir != "" {
		cfg.Run.SnapshotDir = *snapshotDir
	}

	if err := run(cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	g, err := grid.New(cfg.Grid.Cells, cfg.Grid.XMin, cfg.Grid.XMax, grid.Periodic)
	if err != nil {
		return err
	}

	var pts *phase.Points
	switch cfg.Plasma.Loading {
	case config.LoadingRandom:
		rngSeed := cfg.Plasma.Seed
		if rngSeed == 0 {
			rngSeed = uint64(time.Now().UnixNano())
		}
		pts = sim.RandomStart(g, cfg.Plasma.ParticlesPerCell,
			cfg.Plasma.ThermalVelocity, cfg.Plasma.Amplitude, cfg.Plasma.Wavenumber, rngSeed)
	default:
		pts = sim.QuietStart(g, cfg.Plasma.ParticlesPerCell,
			cfg.Plasma.ThermalVelocity, cfg.Plasma.Amplitude, cfg.Plasma.Wavenumber)
	}

	out, err := telemetry.NewOutputManager(cfg.Run.OutputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	if data, err := cfg.Marshal(); err == nil {
		if err := out.WriteFile("config.yaml", data); err != nil {
			return err
		}
	}

	s, err := sim.New(sim.Options{
		Grid:           g,
		Points:         pts,
		DT:             cfg.Time.DT,
		Workers:        cfg.Run.Workers,
		StatsWindowSec: cfg.Run.StatsWindow,
		Output:         out,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	slog.Info("starting simulation",
		"cells", cfg.Grid.Cells,
		"domain_min", cfg.Grid.XMin,
		"domain_max", cfg.Grid.XMax,
		"dt", cfg.Time.DT,
		"steps", cfg.Time.Steps,
		"points", pts.Len(),
		"loading", cfg.Plasma.Loading,
	)
	s.Stats().LogStats()

	for i := 0; i < cfg.Time.Steps; i++ {
		if err := s.Step(); err != nil {
			return err
		}

		if cfg.Time.StatusInterval > 0 && int(s.StepCount())%cfg.Time.StatusInterval == 0 {
			s.Stats().LogStats()
		}
		if cfg.Run.SnapshotDir != "" && cfg.Run.SnapshotInterval > 0 &&
			int(s.StepCount())%cfg.Run.SnapshotInterval == 0 {
			if _, err := telemetry.WriteSnapshot(cfg.Run.SnapshotDir, s.Snapshot()); err != nil {
				return err
			}
		}
	}

	if cfg.Run.SnapshotDir != "" {
		path, err := telemetry.WriteSnapshot(cfg.Run.SnapshotDir, s.Snapshot())
		if err != nil {
			return err
		}
		slog.Info("wrote final snapshot", "path", path)
	}

	s.Perf().LogStats()
	slog.Info("simulation complete", "steps", s.StepCount(), "sim_time", s.Time())
	return nil
}
