package grid

import (
	"gonum.org/v1/gonum/floats"
)

// Field stores one scalar value per grid cell (density, potential,
// electric field, ...). It keeps a shared reference to the Grid it was
// built on; mixing a Field with positions computed against a different
// Grid is undefined and must be prevented by construction discipline,
// not runtime checks.
type Field struct {
	grid *Grid
	data []float64
}

// NewField constructs a field on g with every cell set to initial.
func NewField(g *Grid, initial float64) *Field {
	f := &Field{
		grid: g,
		data: make([]float64, g.NCells()),
	}
	if initial != 0 {
		f.Fill(initial)
	}
	return f
}

// Grid returns the grid this field lives on.
func (f *Field) Grid() *Grid { return f.grid }

// Len returns the number of cells.
func (f *Field) Len() int { return len(f.data) }

// At returns the value of cell i.
func (f *Field) At(i int) float64 { return f.data[i] }

// Set overwrites the value of cell i.
func (f *Field) Set(i int, v float64) { f.data[i] = v }

// Add accumulates v into cell i.
func (f *Field) Add(i int, v float64) { f.data[i] += v }

// Values returns the backing cell array. The slice aliases the field's
// storage; callers that only need a read-only view must not write
// through it.
func (f *Field) Values() []float64 { return f.data }

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Zero sets every cell to zero.
func (f *Field) Zero() {
	clear(f.data)
}

// Interpolate returns the linearly-interpolated field value at x,
// using the periodic right neighbor of the containing cell. A
// spatially-constant field interpolates to that constant, and a
// position on a cell's left edge returns that cell's stored value
// exactly (the right weight is zero there).
func (f *Field) Interpolate(x float64) float64 {
	idx := f.grid.CellIndex(x)
	left, right := f.grid.InterpolationWeights(x)
	next := f.grid.WrapIndex(idx + 1)
	return left*f.data[idx] + right*f.data[next]
}

// Sum returns the sum over all cells.
func (f *Field) Sum() float64 {
	return floats.Sum(f.data)
}

// MinMax returns the smallest and largest cell values. Both are zero
// for an empty field.
func (f *Field) MinMax() (lo, hi float64) {
	if len(f.data) == 0 {
		return 0, 0
	}
	return floats.Min(f.data), floats.Max(f.data)
}
