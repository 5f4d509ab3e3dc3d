package telemetry

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

func makeState(t *testing.T) (*phase.Points, *grid.Field) {
	t.Helper()
	g := grid.MustNew(8, 0.0, 2*math.Pi, grid.Periodic)
	p := phase.New()
	for i := 0; i < 20; i++ {
		p.Append(float64(i)*0.3, math.Sin(float64(i)), 1.0/float64(i+1))
	}
	rho := grid.NewField(g, 0)
	for i := 0; i < g.NCells(); i++ {
		rho.Set(i, float64(i)+0.5)
	}
	return p, rho
}

func TestSnapshotCopiesState(t *testing.T) {
	p, rho := makeState(t)
	s := NewSnapshot(4, 0.4, p, rho)

	// Mutating the live state must not change the snapshot.
	p.X[0] = 99
	rho.Set(0, 99)

	if s.X[0] == 99 || s.Density[0] == 99 {
		t.Error("snapshot aliases live arrays")
	}
	if s.Step != 4 || s.SimTime != 0.4 || s.NCells != 8 {
		t.Errorf("snapshot header %+v", s)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p, rho := makeState(t)
	s := NewSnapshot(12, 1.2, p, rho)

	dir := t.TempDir()
	path, err := WriteSnapshot(dir, s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "snapshot_000012.json.zst") {
		t.Errorf("unexpected snapshot path %q", path)
	}

	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	g2, p2, rho2, err := loaded.Restore()
	if err != nil {
		t.Fatal(err)
	}
	if g2.NCells() != 8 || g2.XMin() != 0 || g2.XMax() != 2*math.Pi {
		t.Errorf("restored grid %d cells on [%g, %g)", g2.NCells(), g2.XMin(), g2.XMax())
	}
	if p2.Len() != 20 {
		t.Fatalf("restored %d points, want 20", p2.Len())
	}
	for i := 0; i < p2.Len(); i++ {
		if p2.X[i] != s.X[i] || p2.V[i] != s.V[i] || p2.F[i] != s.F[i] {
			t.Fatalf("point %d does not round-trip", i)
		}
	}
	for i := 0; i < g2.NCells(); i++ {
		if rho2.At(i) != s.Density[i] {
			t.Fatalf("density cell %d does not round-trip", i)
		}
	}
}

func TestReadSnapshotRejectsBadVersion(t *testing.T) {
	p, rho := makeState(t)
	s := NewSnapshot(0, 0, p, rho)
	s.Version = SnapshotVersion + 1

	dir := t.TempDir()
	path, err := WriteSnapshot(dir, s)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ReadSnapshot(path); err == nil {
		t.Error("ReadSnapshot accepted an unsupported version")
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json.zst")); err == nil {
		t.Error("ReadSnapshot succeeded on a missing file")
	}
}
