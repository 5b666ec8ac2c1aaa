package sampler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBox(t *testing.T) {
	b := Box{Max: r3.Vec{X: 10, Y: 10, Z: 10}}

	tests := []struct {
		name string
		p    r3.Vec
		in   bool
	}{
		{"Center", r3.Vec{X: 5, Y: 5, Z: 5}, true},
		{"MinCorner", r3.Vec{}, true},
		{"MaxFace", r3.Vec{X: 10, Y: 3, Z: 3}, true},
		{"Outside", r3.Vec{X: 10.0001, Y: 3, Z: 3}, false},
		{"Negative", r3.Vec{X: 1, Y: -1, Z: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.in, b.Contains(tt.p))
		})
	}
}

func TestFunc(t *testing.T) {
	s := Func(func(p r3.Vec) r3.Vec { return r3.Vec{X: p.Y} }, Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}})

	assert.Equal(t, r3.Vec{X: 0.5}, s.Sample(r3.Vec{Y: 0.5}))
	assert.True(t, s.InDomain(r3.Vec{Y: 0.5}))
	assert.Equal(t, r3.Vec{}, s.Sample(r3.Vec{Y: 2}))
	assert.False(t, s.InDomain(r3.Vec{Y: 2}))

	unbounded := Constant(r3.Vec{Z: 1}, nil)
	assert.True(t, unbounded.InDomain(r3.Vec{X: 1e9}))
	assert.Equal(t, r3.Vec{Z: 1}, unbounded.Sample(r3.Vec{X: -1e9}))

	scalar := Scalar(func(p r3.Vec) float64 { return p.X * 2 }, nil)
	assert.Equal(t, r3.Vec{X: 6}, scalar.Sample(r3.Vec{X: 3}))
}

func TestNewGridValidation(t *testing.T) {
	_, err := NewGrid([3]int{2, 2, 2}, make([]r3.Vec, 7))
	var shape *ErrGridShape
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, 7, shape.Values)

	_, err = NewGrid([3]int{0, 1, 1}, nil)
	assert.ErrorAs(t, err, &shape)

	_, err = NewGrid([3]int{1, 1, 1}, make([]r3.Vec, 1), func(o *GridOptions) {
		o.Spacing = r3.Vec{X: 1, Y: 0, Z: 1}
	})
	assert.ErrorIs(t, err, ErrInvalidSpacing)
}

func TestGridSample(t *testing.T) {
	// 2x2x2 grid whose X component equals the x index.
	data := make([]r3.Vec, 8)
	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				data[x+2*(y+2*z)] = r3.Vec{X: 1 + float64(x), Y: float64(y)}
			}
		}
	}
	g, err := NewGrid([3]int{2, 2, 2}, data)
	require.NoError(t, err)

	t.Run("Corners", func(t *testing.T) {
		assert.Equal(t, r3.Vec{X: 1}, g.Sample(r3.Vec{}))
		assert.Equal(t, r3.Vec{X: 2, Y: 1}, g.Sample(r3.Vec{X: 1, Y: 1, Z: 1}))
	})

	t.Run("Interpolated", func(t *testing.T) {
		got := g.Sample(r3.Vec{X: 0.25, Y: 0.5, Z: 0.75})
		assert.InDelta(t, 1.25, got.X, 1e-12)
		assert.InDelta(t, 0.5, got.Y, 1e-12)
		assert.InDelta(t, 0.0, got.Z, 1e-12)
	})

	t.Run("OutOfDomain", func(t *testing.T) {
		assert.False(t, g.InDomain(r3.Vec{X: 1.5}))
		assert.Equal(t, r3.Vec{}, g.Sample(r3.Vec{X: 1.5}))
	})
}

func TestGridAlignSigns(t *testing.T) {
	// A line field along X whose stored sign alternates per sample.
	data := []r3.Vec{{X: 1}, {X: -1}}

	aligned, err := NewGrid([3]int{2, 1, 1}, data)
	require.NoError(t, err)
	got := aligned.Sample(r3.Vec{X: 0.5})
	assert.InDelta(t, 1.0, got.X, 1e-12)

	raw, err := NewGrid([3]int{2, 1, 1}, data, func(o *GridOptions) { o.AlignSigns = false })
	require.NoError(t, err)
	got = raw.Sample(r3.Vec{X: 0.5})
	assert.InDelta(t, 0.0, got.X, 1e-12)
}

func TestGridSpatial(t *testing.T) {
	g, err := NewGrid([3]int{3, 3, 3}, make([]r3.Vec, 27), func(o *GridOptions) {
		o.Spacing = r3.Vec{X: 0.5, Y: 0.5, Z: 2}
		o.Origin = r3.Vec{X: -1}
	})
	require.NoError(t, err)

	w := g.DataToWorld().Apply(r3.Vec{X: 2, Y: 2, Z: 2})
	assert.InDelta(t, 0.0, w.X, 1e-12)
	assert.InDelta(t, 1.0, w.Y, 1e-12)
	assert.InDelta(t, 4.0, w.Z, 1e-12)

	m := g.ModelMatrix().Dense()
	assert.Equal(t, 2.0, m.At(2, 2))
}

func TestGridConcurrentSample(t *testing.T) {
	data := make([]r3.Vec, 27)
	for i := range data {
		data[i] = r3.Vec{X: 1, Y: float64(i)}
	}
	g, err := NewGrid([3]int{3, 3, 3}, data)
	require.NoError(t, err)

	want := g.Sample(r3.Vec{X: 1.3, Y: 0.7, Z: 1.9})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, g.Sample(r3.Vec{X: 1.3, Y: 0.7, Z: 1.9}))
			}
		}()
	}
	wg.Wait()
}
