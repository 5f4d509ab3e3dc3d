package phase

// The advance kernels are elementwise maps over the point index: each
// iteration reads and writes only its own index across the parallel
// arrays, so results are independent of processing order and the
// kernels can be chunked across workers without locking (see Pool).

// AdvancePositions performs the free-streaming update
// x[i] += v[i] * dt for every point.
func AdvancePositions(p *Points, dt float64) {
	x, v := p.X, p.V
	for i := range x {
		x[i] += v[i] * dt
	}
}

// AdvanceVelocities applies a spatially-uniform acceleration:
// v[i] += accel * dt for every point. A per-point acceleration from a
// self-consistent field will replace the scalar once a field solver
// supplies one.
func AdvanceVelocities(p *Points, accel, dt float64) {
	dv := accel * dt
	v := p.V
	for i := range v {
		v[i] += dv
	}
}

// AdvancePositionsPool is AdvancePositions chunked across the pool's
// workers. Small collections fall back to the serial loop.
func AdvancePositionsPool(p *Points, dt float64, pool *Pool) {
	n := p.Len()
	if pool == nil || n < parallelThreshold {
		AdvancePositions(p, dt)
		return
	}
	x, v := p.X, p.V
	pool.Run(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x[i] += v[i] * dt
		}
	})
}

// AdvanceVelocitiesPool is AdvanceVelocities chunked across the pool's
// workers.
func AdvanceVelocitiesPool(p *Points, accel, dt float64, pool *Pool) {
	n := p.Len()
	if pool == nil || n < parallelThreshold {
		AdvanceVelocities(p, accel, dt)
		return
	}
	dv := accel * dt
	v := p.V
	pool.Run(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v[i] += dv
		}
	})
}
