package sim

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
	"github.com/pthm-cable/vlasov/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Grid   *grid.Grid
	Points *phase.Points

	// DT is the time step. Must be positive.
	DT float64

	// Accel is the spatially-uniform acceleration applied each step.
	// Zero means free streaming. A per-point acceleration from a field
	// solver replaces this once one is wired in.
	Accel float64

	// Workers sets the pool size: 0 uses GOMAXPROCS, 1 runs serial.
	Workers int

	// StatsWindowSec enables windowed summaries when positive.
	StatsWindowSec float64

	// Output receives CSV records; nil discards them.
	Output *telemetry.OutputManager
}

// Simulation owns the state of one run and repeats the step sequence
// advance -> wrap -> deposit. All mutation happens on the caller's
// goroutine; the worker pool only ever runs index-partitioned chunks
// of a single step at a time.
type Simulation struct {
	g   *grid.Grid
	pts *phase.Points
	rho *grid.Field

	pool      *phase.Pool
	depositor *Depositor

	dt    float64
	accel float64

	step int32
	time float64

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	out       *telemetry.OutputManager

	last telemetry.StepStats
}

// New creates a simulation, computes the initial density, and records
// the step-0 diagnostics.
func New(opts Options) (*Simulation, error) {
	if opts.Grid == nil {
		return nil, errors.New("sim: Options.Grid is required")
	}
	if opts.Points == nil {
		return nil, errors.New("sim: Options.Points is required")
	}
	if opts.DT <= 0 {
		return nil, fmt.Errorf("sim: time step must be positive, got %g", opts.DT)
	}

	s := &Simulation{
		g:     opts.Grid,
		pts:   opts.Points,
		rho:   grid.NewField(opts.Grid, 0),
		dt:    opts.DT,
		accel: opts.Accel,
		perf:  telemetry.NewPerfCollector(100),
		out:   opts.Output,
	}

	if opts.Workers != 1 {
		s.pool = phase.NewPool(opts.Workers)
	}
	s.depositor = NewDepositor(s.g, s.pool)

	if opts.StatsWindowSec > 0 {
		s.collector = telemetry.NewCollector(opts.StatsWindowSec, opts.DT)
	}

	s.depositor.Deposit(s.pts, s.g, s.rho)
	if err := s.recordStats(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Step advances the simulation by one time step.
func (s *Simulation) Step() error {
	s.perf.StartStep()

	s.perf.StartPhase(telemetry.PhaseAdvance)
	phase.AdvanceVelocitiesPool(s.pts, s.accel, s.dt, s.pool)
	phase.AdvancePositionsPool(s.pts, s.dt, s.pool)

	s.perf.StartPhase(telemetry.PhaseWrap)
	ApplyPeriodicBCPool(s.pts, s.g, s.pool)

	s.perf.StartPhase(telemetry.PhaseDeposit)
	s.depositor.Deposit(s.pts, s.g, s.rho)

	s.step++
	s.time += s.dt

	s.perf.StartPhase(telemetry.PhaseStats)
	err := s.recordStats()

	s.perf.EndStep()
	return err
}

// Run advances the simulation n steps.
func (s *Simulation) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) recordStats() error {
	s.last = telemetry.ComputeStepStats(s.step, s.time, s.pts, s.rho)
	if err := s.out.WriteStep(s.last); err != nil {
		return err
	}
	if s.collector == nil {
		return nil
	}
	s.collector.Observe(s.last)
	if s.collector.Ready() {
		if w, ok := s.collector.Flush(); ok {
			return s.out.WriteWindow(w)
		}
	}
	return nil
}

// StepCount returns the number of completed steps.
func (s *Simulation) StepCount() int32 { return s.step }

// Time returns the current simulation time.
func (s *Simulation) Time() float64 { return s.time }

// Grid returns the spatial grid.
func (s *Simulation) Grid() *grid.Grid { return s.g }

// Points returns the phase points. The returned container is live
// simulation state; treat it as read-only between steps.
func (s *Simulation) Points() *phase.Points { return s.pts }

// Density returns the density field of the most recent step, the
// surface a field solver consumes. Read-only between steps.
func (s *Simulation) Density() *grid.Field { return s.rho }

// Stats returns the diagnostics of the most recent step.
func (s *Simulation) Stats() telemetry.StepStats { return s.last }

// Perf returns aggregated step timing over the rolling window.
func (s *Simulation) Perf() telemetry.PerfStats { return s.perf.Stats() }

// Snapshot captures the full current state.
func (s *Simulation) Snapshot() *telemetry.Snapshot {
	return telemetry.NewSnapshot(s.step, s.time, s.pts, s.rho)
}

// Close flushes any partial stats window and stops the worker pool.
func (s *Simulation) Close() error {
	var err error
	if s.collector != nil {
		if w, ok := s.collector.Flush(); ok {
			err = s.out.WriteWindow(w)
		}
		s.collector = nil
	}
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	return err
}
