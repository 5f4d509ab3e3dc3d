// Package sim couples phase points to the spatial grid and drives the
// advance -> wrap -> deposit step sequence. The self-consistent field
// solver is an external collaborator: sim produces the density field a
// solver would consume and leaves the electric field to it.
package sim

import (
	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

// ApplyPeriodicBC wraps every point position back into the grid
// domain. It must run after every position advance so indices computed
// downstream stay in range.
func ApplyPeriodicBC(p *phase.Points, g *grid.Grid) {
	x := p.X
	for i := range x {
		x[i] = g.WrapPosition(x[i])
	}
}

// ApplyPeriodicBCPool is ApplyPeriodicBC chunked across the pool's
// workers. Wrapping is elementwise over the position array, so index
// partitioning is the only synchronization needed.
func ApplyPeriodicBCPool(p *phase.Points, g *grid.Grid, pool *phase.Pool) {
	if pool == nil {
		ApplyPeriodicBC(p, g)
		return
	}
	x := p.X
	pool.Run(p.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x[i] = g.WrapPosition(x[i])
		}
	})
}

// DepositDensity zeroes rho and accumulates every point's weight into
// its nearest cell (NGP deposition): rho[CellIndex(x)] += f/dx.
//
// Deposition is nearest-cell while Field.Interpolate is linear; the
// order mismatch is a known self-force hazard once a field solver
// closes the loop, and stays as-is until that solver lands.
//
// This sequential scatter is the correctness baseline for the parallel
// variant in Depositor.
func DepositDensity(p *phase.Points, g *grid.Grid, rho *grid.Field) {
	rho.Zero()

	invDX := g.InvDX()
	data := rho.Values()
	for i := range p.X {
		data[g.CellIndex(p.X[i])] += p.F[i] * invDX
	}
}

// Depositor performs the density scatter across a worker pool.
// Multiple points map to the same cell, so a plain parallel scatter
// loses updates; each worker accumulates into its own partial field
// and the partials are merged by elementwise sum afterward. The merged
// result matches DepositDensity up to floating-point reassociation.
//
// The partial fields are scratch state reused across calls, which
// makes a Depositor single-driver only, like the pool itself.
type Depositor struct {
	pool     *phase.Pool
	partials [][]float64
}

// NewDepositor creates a depositor whose partial fields match g's cell
// layout. A nil pool yields a depositor that runs sequentially.
func NewDepositor(g *grid.Grid, pool *phase.Pool) *Depositor {
	d := &Depositor{pool: pool}
	if pool != nil {
		d.partials = make([][]float64, pool.Workers())
		for i := range d.partials {
			d.partials[i] = make([]float64, g.NCells())
		}
	}
	return d
}

// Deposit computes the density of p on rho. rho must be bound to the
// same grid the depositor was built for.
func (d *Depositor) Deposit(p *phase.Points, g *grid.Grid, rho *grid.Field) {
	if d.pool == nil || p.Len() < 2*g.NCells() {
		DepositDensity(p, g, rho)
		return
	}

	for _, part := range d.partials {
		clear(part)
	}

	invDX := g.InvDX()
	x, f := p.X, p.F
	d.pool.RunWorker(p.Len(), func(worker, lo, hi int) {
		part := d.partials[worker]
		for i := lo; i < hi; i++ {
			part[g.CellIndex(x[i])] += f[i] * invDX
		}
	})

	rho.Zero()
	data := rho.Values()
	for _, part := range d.partials {
		for i, v := range part {
			data[i] += v
		}
	}
}
