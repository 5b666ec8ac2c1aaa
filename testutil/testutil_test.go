package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/sampler"
)

func TestPointsIn(t *testing.T) {
	rng := NewRNG(4711)
	box := sampler.Box{Min: r3.Vec{X: -1, Y: 2, Z: 0}, Max: r3.Vec{X: 1, Y: 3, Z: 10}}

	pts := rng.PointsIn(64, box)
	assert.Len(t, pts, 64)
	for _, p := range pts {
		assert.True(t, box.Contains(p))
	}

	// Same seed, same points.
	assert.Equal(t, pts, NewRNG(4711).PointsIn(64, box))
}

func TestUnitVector(t *testing.T) {
	rng := NewRNG(4711)
	for i := 0; i < 16; i++ {
		assert.InDelta(t, 1.0, r3.Norm(rng.UnitVector()), 1e-12)
	}
}

func TestSignScrambled(t *testing.T) {
	inner := sampler.Constant(r3.Vec{X: 1}, sampler.Box{Max: r3.Vec{X: 10, Y: 10, Z: 10}})
	s := SignScrambled{Inner: inner, CellSize: 0.5, Salt: 7}

	var pos, neg int
	rng := NewRNG(1)
	for _, p := range rng.PointsIn(256, sampler.Box{Max: r3.Vec{X: 10, Y: 10, Z: 10}}) {
		v := s.Sample(p)
		assert.InDelta(t, 1.0, r3.Norm(v), 1e-12)
		// Deterministic per position.
		assert.Equal(t, v, s.Sample(p))
		if v.X > 0 {
			pos++
		} else {
			neg++
		}
	}

	assert.Positive(t, pos)
	assert.Positive(t, neg)
	assert.False(t, s.InDomain(r3.Vec{X: 11}))
}
