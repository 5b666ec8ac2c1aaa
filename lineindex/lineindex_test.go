package lineindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hyperline/line"
)

func result(seed, points int, fwd, bwd line.TerminationReason) line.Result {
	return line.Result{
		SeedIndex: seed,
		Line: line.Line{
			Points:              make([]line.Point, points),
			ForwardTermination:  fwd,
			BackwardTermination: bwd,
		},
	}
}

func TestIndex(t *testing.T) {
	results := []line.Result{
		result(0, 5, line.MaxStepsReached, line.NotTraced),
		result(1, 1, line.OutOfDomain, line.NotTraced),
		result(2, 2, line.ZeroVelocity, line.NotTraced),
		result(3, 9, line.OutOfDomain, line.NotTraced),
		result(7, 4, line.MaxStepsReached, line.OutOfDomain),
	}

	ix := New(results)

	assert.Equal(t, []uint32{0, 1, 2, 3, 7}, ix.All().ToArray())
	assert.Equal(t, []uint32{1, 3}, ix.Forward(line.OutOfDomain).ToArray())
	assert.Equal(t, []uint32{0, 7}, ix.Forward(line.MaxStepsReached).ToArray())
	assert.Equal(t, []uint32{7}, ix.Backward(line.OutOfDomain).ToArray())
	assert.True(t, ix.Forward(line.TerminationReason(99)).IsEmpty())
	assert.Equal(t, []uint32{0, 3, 7}, ix.AtLeast(3).ToArray())

	t.Run("Select", func(t *testing.T) {
		keep := ix.AtLeast(2)
		keep.AndNot(ix.Forward(line.ZeroVelocity))

		got := Select(results, keep)
		require.Len(t, got, 3)
		assert.Equal(t, 0, got[0].SeedIndex)
		assert.Equal(t, 3, got[1].SeedIndex)
		assert.Equal(t, 7, got[2].SeedIndex)
	})

	t.Run("ClonesAreIndependent", func(t *testing.T) {
		bm := ix.Forward(line.OutOfDomain)
		bm.Clear()
		assert.Equal(t, uint64(2), ix.Forward(line.OutOfDomain).GetCardinality())
	})
}

func TestIndexSkipsNegativeSeeds(t *testing.T) {
	ix := New([]line.Result{result(-1, 3, line.MaxStepsReached, line.NotTraced)})
	assert.True(t, ix.All().IsEmpty())
}
