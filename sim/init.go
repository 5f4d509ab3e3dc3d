package sim

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/vlasov/grid"
	"github.com/pthm-cable/vlasov/phase"
)

// vCutoff bounds the sampled velocity range in units of the thermal
// velocity. A Maxwellian carries ~6e-5 of its mass beyond 4 sigma.
const vCutoff = 4.0

// QuietStart deterministically loads a perturbed Maxwellian
//
//	f(x, v) = f0(v) * (1 + eps*cos(k*x))
//
// by placing perCell points at every cell center, with velocities on a
// uniform midpoint ladder spanning [-4*vTh, 4*vTh]. Each point's
// weight is the distribution value at its phase-space location. The
// quiet start has no sampling noise, which keeps early density
// diagnostics clean.
func QuietStart(g *grid.Grid, perCell int, vTh, eps, k float64) *phase.Points {
	p := phase.WithCapacity(g.NCells() * perCell)

	vMin := -vCutoff * vTh
	vMax := vCutoff * vTh
	dv := (vMax - vMin) / float64(perCell)
	norm := 1.0 / (math.Sqrt(2*math.Pi) * vTh)

	for i := 0; i < g.NCells(); i++ {
		x := g.CellCenter(i)
		densityFactor := 1.0 + eps*math.Cos(k*x)

		for j := 0; j < perCell; j++ {
			v := vMin + (float64(j)+0.5)*dv
			f := norm * math.Exp(-v*v/(2*vTh*vTh)) * densityFactor
			p.Append(x, v, f)
		}
	}
	return p
}

// RandomStart loads the same perturbed Maxwellian by Monte Carlo:
// positions are uniform over the domain, velocities are drawn from a
// normal distribution with standard deviation vTh, and each point
// carries a mass weight proportional to the local density factor.
// Weights are normalized so the deposited density has mean one, which
// makes quiet and random runs directly comparable in diagnostics.
func RandomStart(g *grid.Grid, perCell int, vTh, eps, k float64, seed uint64) *phase.Points {
	n := g.NCells() * perCell
	p := phase.WithCapacity(n)

	src := rand.NewSource(seed)
	xDist := distuv.Uniform{Min: g.XMin(), Max: g.XMax(), Src: src}
	vDist := distuv.Normal{Mu: 0, Sigma: vTh, Src: src}

	// With n points spread uniformly over ncells cells, a base weight
	// of L/n makes the NGP-deposited density average to one.
	w := g.Length() / float64(n)
	for i := 0; i < n; i++ {
		x := xDist.Rand()
		v := vDist.Rand()
		p.Append(x, v, w*(1.0+eps*math.Cos(k*x)))
	}
	return p
}
