// Package phase provides the structure-of-arrays phase-point container
// and the elementwise trajectory-advance kernels.
//
// Each phase point carries a position, a velocity, and a constant
// distribution-function weight; by Liouville's theorem the weight is
// invariant along a trajectory, so the kernels never touch it. The
// three attributes live in separate lockstep arrays (SoA layout for
// cache efficiency) indexed by phase-point index.
package phase

import (
	"gonum.org/v1/gonum/floats"
)

// Points is a growable collection of phase-space points stored as
// three parallel arrays. The arrays always have identical length.
//
// Indexed access is unchecked beyond Go's built-in slice bounds
// checks; out-of-range access and PopBack on an empty collection are
// caller contract violations and panic.
type Points struct {
	X []float64 // positions
	V []float64 // velocities
	F []float64 // distribution-function weights
}

// New creates an empty collection.
func New() *Points {
	return &Points{}
}

// WithCapacity creates an empty collection with room for n points.
func WithCapacity(n int) *Points {
	return &Points{
		X: make([]float64, 0, n),
		V: make([]float64, 0, n),
		F: make([]float64, 0, n),
	}
}

// Uniform creates n points all initialized to (x, v, f).
func Uniform(n int, x, v, f float64) *Points {
	p := &Points{
		X: make([]float64, n),
		V: make([]float64, n),
		F: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		p.X[i] = x
		p.V[i] = v
		p.F[i] = f
	}
	return p
}

// Len returns the number of phase points.
func (p *Points) Len() int { return len(p.X) }

// Cap returns the current capacity.
func (p *Points) Cap() int { return cap(p.X) }

// Empty reports whether the collection holds no points.
func (p *Points) Empty() bool { return len(p.X) == 0 }

// Reserve grows the capacity of all three arrays to at least n.
func (p *Points) Reserve(n int) {
	if n <= cap(p.X) {
		return
	}
	p.X = append(make([]float64, 0, n), p.X...)
	p.V = append(make([]float64, 0, n), p.V...)
	p.F = append(make([]float64, 0, n), p.F...)
}

// Resize sets the number of points to n. New points are zero-valued;
// shrinking keeps the first n points.
func (p *Points) Resize(n int) {
	p.X = resize(p.X, n, 0)
	p.V = resize(p.V, n, 0)
	p.F = resize(p.F, n, 0)
}

// ResizeTo sets the number of points to n, filling any new points
// with (x, v, f).
func (p *Points) ResizeTo(n int, x, v, f float64) {
	p.X = resize(p.X, n, x)
	p.V = resize(p.V, n, v)
	p.F = resize(p.F, n, f)
}

func resize(s []float64, n int, fill float64) []float64 {
	if n <= len(s) {
		return s[:n]
	}
	for len(s) < n {
		s = append(s, fill)
	}
	return s
}

// Clear removes all points but keeps the allocated capacity.
func (p *Points) Clear() {
	p.X = p.X[:0]
	p.V = p.V[:0]
	p.F = p.F[:0]
}

// Append adds one phase point.
func (p *Points) Append(x, v, f float64) {
	p.X = append(p.X, x)
	p.V = append(p.V, v)
	p.F = append(p.F, f)
}

// PopBack removes the last point. Calling it on an empty collection
// panics.
func (p *Points) PopBack() {
	n := len(p.X) - 1
	p.X = p.X[:n]
	p.V = p.V[:n]
	p.F = p.F[:n]
}

// TotalWeight returns the sum of all distribution-function weights.
// The advance kernels leave it unchanged, which makes it a cheap
// conservation diagnostic.
func (p *Points) TotalWeight() float64 {
	return floats.Sum(p.F)
}
