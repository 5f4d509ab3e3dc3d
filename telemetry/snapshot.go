package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DataDog/zstd"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete phase-point and density state of a run
// at one step, sufficient to restart or post-process it. Snapshots are
// written as zstd-compressed JSON; phase-point arrays dominate the
// size and compress well.
type Snapshot struct {
	Version int `json:"version"`

	Step    int32   `json:"step"`
	SimTime float64 `json:"sim_time"`

	// Grid parameters (the grid itself is reconstructed on load)
	NCells int     `json:"n_cells"`
	XMin   float64 `json:"x_min"`
	XMax   float64 `json:"x_max"`

	// Phase-point arrays, in lockstep
	X []float64 `json:"x"`
	V []float64 `json:"v"`
	F []float64 `json:"f"`

	// Density at the snapshot step
	Density []float64 `json:"density"`
}

// NewSnapshot captures the current state. The arrays are copied so the
// snapshot stays valid while the simulation keeps stepping.
func NewSnapshot(step int32, simTime float64, p *phase.Points, rho *grid.Field) *Snapshot {
	g := rho.Grid()
	s := &Snapshot{
		Version: SnapshotVersion,
		Step:    step,
		SimTime: simTime,
		NCells:  g.NCells(),
		XMin:    g.XMin(),
		XMax:    g.XMax(),
		X:       append([]float64(nil), p.X...),
		V:       append([]float64(nil), p.V...),
		F:       append([]float64(nil), p.F...),
		Density: append([]float64(nil), rho.Values()...),
	}
	return s
}

// Filename returns the canonical snapshot file name for a step.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("snapshot_%06d.json.zst", s.Step)
}

// WriteSnapshot writes the snapshot into dir, creating it if needed.
// It returns the path of the written file.
func WriteSnapshot(dir string, s *Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	path := filepath.Join(dir, s.Filename())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	zw := zstd.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot stream: %w", err)
	}
	return path, nil
}

// ReadSnapshot loads a snapshot file written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	zr := zstd.NewReader(f)
	defer zr.Close()

	s := &Snapshot{}
	if err := json.NewDecoder(zr).Decode(s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", s.Version, SnapshotVersion)
	}
	if len(s.X) != len(s.V) || len(s.X) != len(s.F) {
		return nil, fmt.Errorf("snapshot arrays out of lockstep: %d/%d/%d", len(s.X), len(s.V), len(s.F))
	}
	return s, nil
}

// Restore rebuilds the grid, phase points, and density field stored in
// the snapshot.
func (s *Snapshot) Restore() (*grid.Grid, *phase.Points, *grid.Field, error) {
	g, err := grid.New(s.NCells, s.XMin, s.XMax, grid.Periodic)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("restoring grid: %w", err)
	}
	if len(s.Density) != g.NCells() {
		return nil, nil, nil, fmt.Errorf("density length %d does not match %d cells", len(s.Density), g.NCells())
	}

	p := &phase.Points{
		X: append([]float64(nil), s.X...),
		V: append([]float64(nil), s.V...),
		F: append([]float64(nil), s.F...),
	}

	rho := grid.NewField(g, 0)
	copy(rho.Values(), s.Density)

	return g, p, rho, nil
}
