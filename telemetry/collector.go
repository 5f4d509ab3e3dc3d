package telemetry

import "math"

// WindowStats summarizes the step records of one stats window.
type WindowStats struct {
	WindowStartStep int32   `csv:"-"`
	WindowEndStep   int32   `csv:"window_end"`
	SimTime         float64 `csv:"sim_time"`

	Steps int `csv:"steps"`

	// Density extremes seen anywhere in the window
	RhoMin float64 `csv:"rho_min"`
	RhoMax float64 `csv:"rho_max"`

	// Conservation drift relative to the first step ever observed
	WeightDrift   float64 `csv:"weight_drift"`
	MomentumDrift float64 `csv:"momentum_drift"`

	// Moments at window end
	VMean    float64 `csv:"v_mean"`
	VThermal float64 `csv:"v_thermal"`
}

// Collector accumulates per-step diagnostics into fixed-length windows
// of simulation steps.
type Collector struct {
	windowSteps int32
	startStep   int32

	haveBaseline     bool
	baselineWeight   float64
	baselineMomentum float64

	count  int
	rhoMin float64
	rhoMax float64
	last   StepStats
}

// NewCollector creates a collector emitting one WindowStats every
// windowSec of simulation time at the given dt. Windows are at least
// one step long.
func NewCollector(windowSec, dt float64) *Collector {
	// Round so that windows like 0.3s at dt=0.1 come out as 3 steps
	// despite the division landing just below the integer.
	steps := int32(math.Round(windowSec / dt))
	if steps < 1 {
		steps = 1
	}
	return &Collector{windowSteps: steps}
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int32 { return c.windowSteps }

// Observe records one step. The first observation ever becomes the
// baseline for conservation drift.
func (c *Collector) Observe(s StepStats) {
	if !c.haveBaseline {
		c.haveBaseline = true
		c.baselineWeight = s.TotalWeight
		c.baselineMomentum = s.Momentum
	}
	if c.count == 0 {
		c.startStep = s.Step
		c.rhoMin = s.RhoMin
		c.rhoMax = s.RhoMax
	} else {
		if s.RhoMin < c.rhoMin {
			c.rhoMin = s.RhoMin
		}
		if s.RhoMax > c.rhoMax {
			c.rhoMax = s.RhoMax
		}
	}
	c.count++
	c.last = s
}

// Ready reports whether the current window is full.
func (c *Collector) Ready() bool {
	return int32(c.count) >= c.windowSteps
}

// Flush summarizes and resets the current window. It returns false if
// no steps were observed since the last flush.
func (c *Collector) Flush() (WindowStats, bool) {
	if c.count == 0 {
		return WindowStats{}, false
	}
	w := WindowStats{
		WindowStartStep: c.startStep,
		WindowEndStep:   c.last.Step,
		SimTime:         c.last.SimTime,
		Steps:           c.count,
		RhoMin:          c.rhoMin,
		RhoMax:          c.rhoMax,
		WeightDrift:     c.last.TotalWeight - c.baselineWeight,
		MomentumDrift:   c.last.Momentum - c.baselineMomentum,
		VMean:           c.last.VMean,
		VThermal:        c.last.VThermal,
	}
	c.count = 0
	return w, true
}
