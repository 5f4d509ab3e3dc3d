package sim

import (
	"math"
	"testing"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

func TestApplyPeriodicBC(t *testing.T) {
	g := grid.MustNew(10, 0.0, 10.0, grid.Periodic)
	p := phase.New()
	p.Append(-2.5, 0, 1)
	p.Append(12.5, 0, 1)
	p.Append(3.0, 0, 1)

	ApplyPeriodicBC(p, g)

	want := []float64{7.5, 2.5, 3.0}
	for i, w := range want {
		if math.Abs(p.X[i]-w) > 1e-12 {
			t.Errorf("X[%d] = %g, want %g", i, p.X[i], w)
		}
		if !g.Contains(p.X[i]) {
			t.Errorf("X[%d] = %g outside domain", i, p.X[i])
		}
	}
}

func TestDepositDensitySameCell(t *testing.T) {
	// Two points in cell 0 sum their weights there.
	g := grid.MustNew(10, 0.0, 10.0, grid.Periodic)
	rho := grid.NewField(g, 0)

	p := phase.New()
	p.Append(0.5, 0, 1)
	p.Append(0.5, 0, 1)

	DepositDensity(p, g, rho)

	want := 2.0 * g.InvDX()
	if math.Abs(rho.At(0)-want) > 1e-15 {
		t.Errorf("rho[0] = %g, want %g", rho.At(0), want)
	}
	for i := 1; i < rho.Len(); i++ {
		if rho.At(i) != 0 {
			t.Errorf("rho[%d] = %g, want 0", i, rho.At(i))
		}
	}
}

func TestDepositDensityZeroesFirst(t *testing.T) {
	g := grid.MustNew(4, 0.0, 4.0, grid.Periodic)
	rho := grid.NewField(g, 99.0)

	p := phase.New()
	p.Append(1.5, 0, 1)

	DepositDensity(p, g, rho)

	if rho.At(0) != 0 || rho.At(2) != 0 || rho.At(3) != 0 {
		t.Errorf("stale values survived deposit: %v", rho.Values())
	}
	if math.Abs(rho.At(1)-g.InvDX()) > 1e-15 {
		t.Errorf("rho[1] = %g, want %g", rho.At(1), g.InvDX())
	}
}

func TestDepositDensityWrapsOutOfDomainPoints(t *testing.T) {
	g := grid.MustNew(4, 0.0, 4.0, grid.Periodic)
	rho := grid.NewField(g, 0)

	p := phase.New()
	p.Append(4.5, 0, 1)  // wraps to cell 0
	p.Append(-0.5, 0, 1) // wraps to cell 3

	DepositDensity(p, g, rho)

	if rho.At(0) != g.InvDX() || rho.At(3) != g.InvDX() {
		t.Errorf("rho = %v", rho.Values())
	}
}

func TestDepositConservesWeight(t *testing.T) {
	g := grid.MustNew(32, 0.0, 2*math.Pi, grid.Periodic)
	rho := grid.NewField(g, 0)

	p := QuietStart(g, 16, 1.0, 0.1, 1.0)
	DepositDensity(p, g, rho)

	// Sum over cells of rho*dx recovers the total deposited weight.
	if got, want := rho.Sum()*g.DX(), p.TotalWeight(); math.Abs(got-want) > 1e-10 {
		t.Errorf("sum(rho)*dx = %.15g, total weight = %.15g", got, want)
	}
}

func TestDepositorMatchesSequential(t *testing.T) {
	g := grid.MustNew(64, 0.0, 2*math.Pi, grid.Periodic)
	p := RandomStart(g, 256, 1.0, 0.1, 1.0, 7)

	want := grid.NewField(g, 0)
	DepositDensity(p, g, want)

	pool := phase.NewPool(4)
	defer pool.Close()
	d := NewDepositor(g, pool)

	got := grid.NewField(g, 0)
	d.Deposit(p, g, got)

	for i := 0; i < g.NCells(); i++ {
		// Same sums in different order: equal up to reassociation.
		if math.Abs(got.At(i)-want.At(i)) > 1e-10 {
			t.Errorf("cell %d: parallel %.15g vs sequential %.15g", i, got.At(i), want.At(i))
		}
	}
}

func TestDepositorSmallFallsBackToSequential(t *testing.T) {
	g := grid.MustNew(16, 0.0, 16.0, grid.Periodic)
	pool := phase.NewPool(2)
	defer pool.Close()
	d := NewDepositor(g, pool)

	p := phase.New()
	p.Append(3.5, 0, 2)

	rho := grid.NewField(g, 0)
	d.Deposit(p, g, rho)

	if rho.At(3) != 2.0*g.InvDX() {
		t.Errorf("rho[3] = %g, want %g", rho.At(3), 2.0*g.InvDX())
	}
}

func TestDepositorNilPool(t *testing.T) {
	g := grid.MustNew(8, 0.0, 8.0, grid.Periodic)
	d := NewDepositor(g, nil)

	p := phase.New()
	p.Append(6.5, 0, 1)

	rho := grid.NewField(g, 0)
	d.Deposit(p, g, rho)

	if rho.At(6) != g.InvDX() {
		t.Errorf("rho[6] = %g, want %g", rho.At(6), g.InvDX())
	}
}
