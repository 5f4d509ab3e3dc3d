package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFieldInitialValue(t *testing.T) {
	g := MustNew(8, 0.0, 1.0, Periodic)

	f := NewField(g, 0.0)
	assert.Equal(t, 8, f.Len())
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, 0.0, f.At(i))
	}

	f = NewField(g, 2.5)
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, 2.5, f.At(i))
	}
	assert.Same(t, g, f.Grid())
}

func TestFieldFillZero(t *testing.T) {
	g := MustNew(4, 0.0, 4.0, Periodic)
	f := NewField(g, 1.0)

	f.Fill(3.0)
	assert.Equal(t, []float64{3, 3, 3, 3}, f.Values())

	f.Zero()
	assert.Equal(t, []float64{0, 0, 0, 0}, f.Values())
}

func TestFieldSetAddAt(t *testing.T) {
	g := MustNew(4, 0.0, 4.0, Periodic)
	f := NewField(g, 0.0)

	f.Set(2, 1.5)
	f.Add(2, 0.5)
	assert.Equal(t, 2.0, f.At(2))
	assert.Equal(t, 0.0, f.At(1))
}

func TestInterpolateLinearRamp(t *testing.T) {
	g := MustNew(4, 0.0, 4.0, Periodic)
	f := NewField(g, 0.0)
	for i := 0; i < 4; i++ {
		f.Set(i, float64(i))
	}

	// Midpoint between cells 1 and 2.
	assert.InDelta(t, 1.5, f.Interpolate(1.5), 1e-12)
	assert.InDelta(t, 0.25, f.Interpolate(0.25), 1e-12)
	// Across the periodic seam cell 3 blends toward cell 0.
	assert.InDelta(t, 1.5, f.Interpolate(3.5), 1e-12)
}

func TestInterpolateConstantField(t *testing.T) {
	g := MustNew(64, 0.0, 2*math.Pi, Periodic)
	f := NewField(g, 7.25)

	for _, x := range []float64{-5.0, 0.0, 0.1, math.Pi, 6.2, 10.0, 2 * math.Pi} {
		assert.InDelta(t, 7.25, f.Interpolate(x), 1e-13, "x = %g", x)
	}
}

func TestInterpolateAtCellLeftEdge(t *testing.T) {
	g := MustNew(8, 0.0, 8.0, Periodic)
	f := NewField(g, 0.0)
	for i := 0; i < 8; i++ {
		f.Set(i, float64(i*i)+0.125)
	}

	for i := 0; i < 8; i++ {
		assert.Equal(t, f.At(i), f.Interpolate(g.CellLeft(i)), "cell %d", i)
	}
}

func TestFieldSumMinMax(t *testing.T) {
	g := MustNew(4, 0.0, 4.0, Periodic)
	f := NewField(g, 0.0)
	f.Set(0, -1.0)
	f.Set(1, 2.0)
	f.Set(2, 0.5)
	f.Set(3, 1.5)

	assert.Equal(t, 3.0, f.Sum())
	lo, hi := f.MinMax()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 2.0, hi)
}
