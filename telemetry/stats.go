// Package telemetry collects per-step diagnostics, windowed summaries,
// phase timing, and snapshot output for simulation runs.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

// StepStats holds the diagnostics of a single simulation step.
type StepStats struct {
	Step    int32   `csv:"step"`
	SimTime float64 `csv:"sim_time"`

	NumPoints   int     `csv:"points"`
	TotalWeight float64 `csv:"total_weight"`

	// Density field summary
	RhoMin  float64 `csv:"rho_min"`
	RhoMean float64 `csv:"rho_mean"`
	RhoMax  float64 `csv:"rho_max"`

	// Weight-averaged velocity moments
	VMean    float64 `csv:"v_mean"`
	VThermal float64 `csv:"v_thermal"`
	Momentum float64 `csv:"momentum"`
}

// ComputeStepStats builds the diagnostics record for one step from the
// current phase points and density field. Moments are weighted by the
// distribution-function weights.
func ComputeStepStats(step int32, simTime float64, p *phase.Points, rho *grid.Field) StepStats {
	s := StepStats{
		Step:      step,
		SimTime:   simTime,
		NumPoints: p.Len(),
	}

	if p.Len() > 0 {
		s.TotalWeight = p.TotalWeight()
		s.Momentum = floats.Dot(p.F, p.V)
		s.VMean = stat.Mean(p.V, p.F)
		s.VThermal = stat.StdDev(p.V, p.F)
	}

	if rho.Len() > 0 {
		s.RhoMin, s.RhoMax = rho.MinMax()
		s.RhoMean = rho.Sum() / float64(rho.Len())
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", int(s.Step)),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("points", s.NumPoints),
		slog.Float64("total_weight", s.TotalWeight),
		slog.Float64("rho_min", s.RhoMin),
		slog.Float64("rho_mean", s.RhoMean),
		slog.Float64("rho_max", s.RhoMax),
		slog.Float64("v_mean", s.VMean),
		slog.Float64("v_thermal", s.VThermal),
		slog.Float64("momentum", s.Momentum),
	)
}

// LogStats logs the step stats using slog.
func (s StepStats) LogStats() {
	slog.Info("step",
		"step", s.Step,
		"sim_time", s.SimTime,
		"points", s.NumPoints,
		"total_weight", s.TotalWeight,
		"rho_min", s.RhoMin,
		"rho_max", s.RhoMax,
	)
}
