// Package grid provides the uniform 1-D spatial grid and the scalar
// fields that live on it. The grid is cell-centered:
//
//	x_min                                           x_max
//	  |-------|-------|-------|-------|-------|
//	  |   0   |   1   |  ...  |  n-2  |  n-1  |
//	  |-------|-------|-------|-------|-------|
//
// A Grid is immutable after construction and safe for concurrent
// read-only use from any number of goroutines.
package grid

import (
	"fmt"
	"math"
)

// Boundary selects how positions and indices behave at the domain edges.
type Boundary int

const (
	// Periodic wraps positions and indices around the domain.
	Periodic Boundary = iota
)

// String returns the boundary name for logging and config dumps.
func (b Boundary) String() string {
	switch b {
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// Grid is a uniform discretization of the 1-D spatial domain
// [xMin, xMax). All geometry is derived from the cell count and the
// domain bounds at construction and never mutated afterward.
type Grid struct {
	nCells int
	xMin   float64
	xMax   float64
	length float64
	dx     float64
	invDX  float64
	bc     Boundary
}

// New constructs a uniform grid with nCells cells spanning [xMin, xMax).
// It returns an error if nCells is zero or the domain has non-positive
// length; no other validation is performed.
func New(nCells int, xMin, xMax float64, bc Boundary) (*Grid, error) {
	if nCells <= 0 {
		return nil, fmt.Errorf("grid: cell count must be positive, got %d", nCells)
	}
	if xMin >= xMax {
		return nil, fmt.Errorf("grid: domain [%g, %g) has non-positive length", xMin, xMax)
	}

	length := xMax - xMin
	dx := length / float64(nCells)
	return &Grid{
		nCells: nCells,
		xMin:   xMin,
		xMax:   xMax,
		length: length,
		dx:     dx,
		invDX:  1.0 / dx,
		bc:     bc,
	}, nil
}

// MustNew is like New but panics on error. Intended for tests and
// hard-coded setups.
func MustNew(nCells int, xMin, xMax float64, bc Boundary) *Grid {
	g, err := New(nCells, xMin, xMax, bc)
	if err != nil {
		panic(err)
	}
	return g
}

// NCells returns the number of cells.
func (g *Grid) NCells() int { return g.nCells }

// XMin returns the left boundary of the domain.
func (g *Grid) XMin() float64 { return g.xMin }

// XMax returns the right boundary of the domain.
func (g *Grid) XMax() float64 { return g.xMax }

// Length returns the domain length xMax - xMin.
func (g *Grid) Length() float64 { return g.length }

// DX returns the cell width.
func (g *Grid) DX() float64 { return g.dx }

// InvDX returns 1/dx.
func (g *Grid) InvDX() float64 { return g.invDX }

// Boundary returns the boundary condition.
func (g *Grid) Boundary() Boundary { return g.bc }

// CellCenter returns the center position of cell i. The index is not
// bounds-checked beyond Go's usual guarantees; callers on hot paths
// are expected to pass i < NCells().
func (g *Grid) CellCenter(i int) float64 {
	return g.xMin + (float64(i)+0.5)*g.dx
}

// CellLeft returns the left edge position of cell i.
func (g *Grid) CellLeft(i int) float64 {
	return g.xMin + float64(i)*g.dx
}

// CellRight returns the right edge position of cell i.
func (g *Grid) CellRight(i int) float64 {
	return g.xMin + float64(i+1)*g.dx
}

// CellCenters returns the positions of all cell centers.
func (g *Grid) CellCenters() []float64 {
	centers := make([]float64, g.nCells)
	for i := range centers {
		centers[i] = g.CellCenter(i)
	}
	return centers
}

// CellIndex returns the index of the cell containing x. The position is
// wrapped into the domain first, so any real x maps to a valid index.
// The result is clamped into [0, NCells) to absorb floating-point
// rounding that pushes a wrapped position exactly onto xMax.
func (g *Grid) CellIndex(x float64) int {
	xw := g.WrapPosition(x)
	idx := int(math.Floor((xw - g.xMin) * g.invDX))
	if idx < 0 {
		idx = 0
	}
	if idx >= g.nCells {
		idx = g.nCells - 1
	}
	return idx
}

// InterpolationWeights returns the (left, right) weights for linear
// interpolation between the cell containing x and its right neighbor.
// The weights sum to 1 up to rounding.
func (g *Grid) InterpolationWeights(x float64) (left, right float64) {
	xw := g.WrapPosition(x)
	idx := g.CellIndex(xw)
	right = (xw - g.CellLeft(idx)) * g.invDX
	return 1.0 - right, right
}

// WrapPosition reduces x modulo the domain length into [xMin, xMax).
// Wrapping an already-wrapped position is a no-op up to rounding.
func (g *Grid) WrapPosition(x float64) float64 {
	rel := math.Mod(x-g.xMin, g.length)
	if rel < 0 {
		rel += g.length
	}
	return g.xMin + rel
}

// WrapIndex reduces an arbitrary (possibly negative) cell index modulo
// NCells into [0, NCells). Used to find periodic neighbor cells.
func (g *Grid) WrapIndex(i int) int {
	i %= g.nCells
	if i < 0 {
		i += g.nCells
	}
	return i
}

// Contains reports whether x lies inside the half-open domain
// [xMin, xMax).
func (g *Grid) Contains(x float64) bool {
	return x >= g.xMin && x < g.xMax
}
