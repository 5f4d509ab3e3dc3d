// Package config provides configuration loading and access for
// simulation runs.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Loading schemes for the initial distribution.
const (
	LoadingQuiet  = "quiet"
	LoadingRandom = "random"
)

// Config holds all run configuration parameters.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Time   TimeConfig   `yaml:"time"`
	Plasma PlasmaConfig `yaml:"plasma"`
	Run    RunConfig    `yaml:"run"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds the spatial grid parameters.
type GridConfig struct {
	Cells int     `yaml:"cells"`
	XMin  float64 `yaml:"x_min"`
	XMax  float64 `yaml:"x_max"`
}

// TimeConfig holds time stepping parameters.
type TimeConfig struct {
	DT             float64 `yaml:"dt"`
	Steps          int     `yaml:"steps"`
	StatusInterval int     `yaml:"status_interval"` // steps between status log lines (0 disables)
}

// PlasmaConfig holds the initial distribution parameters:
// a Maxwellian with thermal velocity vth carrying a sinusoidal
// density perturbation 1 + amplitude*cos(wavenumber*x).
type PlasmaConfig struct {
	ParticlesPerCell int     `yaml:"particles_per_cell"`
	ThermalVelocity  float64 `yaml:"thermal_velocity"`
	Amplitude        float64 `yaml:"amplitude"`
	Wavenumber       float64 `yaml:"wavenumber"`
	Loading          string  `yaml:"loading"` // quiet | random
	Seed             uint64  `yaml:"seed"`    // random loading only; 0 = time-based
}

// RunConfig holds execution and output parameters.
type RunConfig struct {
	Workers          int     `yaml:"workers"`           // 0 = GOMAXPROCS, 1 = serial
	OutputDir        string  `yaml:"output_dir"`        // "" disables CSV output
	SnapshotDir      string  `yaml:"snapshot_dir"`      // "" disables snapshots
	SnapshotInterval int     `yaml:"snapshot_interval"` // steps between snapshots (0 = final only)
	StatsWindow      float64 `yaml:"stats_window"`      // seconds of sim time per stats window
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Length      float64 // domain length
	DX          float64 // cell width
	TotalPoints int     // cells * particles_per_cell
}

// Load loads configuration from a YAML file, merging it over the
// embedded defaults. If path is empty, only defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct; only fields present in the
		// file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Grid.Cells <= 0 {
		return fmt.Errorf("config: grid.cells must be positive, got %d", c.Grid.Cells)
	}
	if c.Grid.XMin >= c.Grid.XMax {
		return fmt.Errorf("config: grid domain [%g, %g) has non-positive length", c.Grid.XMin, c.Grid.XMax)
	}
	if c.Time.DT <= 0 {
		return fmt.Errorf("config: time.dt must be positive, got %g", c.Time.DT)
	}
	if c.Time.Steps < 0 {
		return fmt.Errorf("config: time.steps must be non-negative, got %d", c.Time.Steps)
	}
	if c.Plasma.ParticlesPerCell <= 0 {
		return fmt.Errorf("config: plasma.particles_per_cell must be positive, got %d", c.Plasma.ParticlesPerCell)
	}
	if c.Plasma.ThermalVelocity <= 0 {
		return fmt.Errorf("config: plasma.thermal_velocity must be positive, got %g", c.Plasma.ThermalVelocity)
	}
	switch c.Plasma.Loading {
	case LoadingQuiet, LoadingRandom:
	default:
		return fmt.Errorf("config: plasma.loading must be %q or %q, got %q",
			LoadingQuiet, LoadingRandom, c.Plasma.Loading)
	}
	return nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.Length = c.Grid.XMax - c.Grid.XMin
	c.Derived.DX = c.Derived.Length / float64(c.Grid.Cells)
	c.Derived.TotalPoints = c.Grid.Cells * c.Plasma.ParticlesPerCell
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal returns the configuration as YAML bytes.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
