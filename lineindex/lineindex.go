// Package lineindex indexes batch results by seed index so callers can pick
// the hyperstreamlines worth rendering.
//
// Seed sets are Roaring bitmaps; they combine with And/Or/AndNot:
//
//	ix := lineindex.New(results)
//	keep := ix.AtLeast(3)                              // two or more steps taken
//	keep.AndNot(ix.Forward(line.ZeroVelocity))         // drop degenerate lines
//	useful := lineindex.Select(results, keep)
package lineindex

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/hyperline/line"
)

// Index maps termination reasons and line lengths to seed indices.
//
// Seed indices must fit in a uint32; larger ones are not indexed.
type Index struct {
	forward  [line.NumReasons]*roaring.Bitmap
	backward [line.NumReasons]*roaring.Bitmap
	all      *roaring.Bitmap
	lengths  map[uint32]int
}

// New builds an index over results.
func New(results []line.Result) *Index {
	ix := &Index{
		all:     roaring.New(),
		lengths: make(map[uint32]int, len(results)),
	}
	for i := range ix.forward {
		ix.forward[i] = roaring.New()
		ix.backward[i] = roaring.New()
	}

	for i := range results {
		r := &results[i]
		id, ok := seedID(r.SeedIndex)
		if !ok {
			continue
		}

		ix.all.Add(id)
		ix.lengths[id] = r.Line.Len()
		if valid(r.Line.ForwardTermination) {
			ix.forward[r.Line.ForwardTermination].Add(id)
		}
		if valid(r.Line.BackwardTermination) {
			ix.backward[r.Line.BackwardTermination].Add(id)
		}
	}

	return ix
}

// All returns every indexed seed.
func (ix *Index) All() *roaring.Bitmap {
	return ix.all.Clone()
}

// Forward returns the seeds whose forward trace ended with reason.
func (ix *Index) Forward(reason line.TerminationReason) *roaring.Bitmap {
	if !valid(reason) {
		return roaring.New()
	}
	return ix.forward[reason].Clone()
}

// Backward returns the seeds whose backward trace ended with reason.
func (ix *Index) Backward(reason line.TerminationReason) *roaring.Bitmap {
	if !valid(reason) {
		return roaring.New()
	}
	return ix.backward[reason].Clone()
}

// AtLeast returns the seeds whose line has at least n points.
func (ix *Index) AtLeast(n int) *roaring.Bitmap {
	out := roaring.New()
	for id, l := range ix.lengths {
		if l >= n {
			out.Add(id)
		}
	}
	return out
}

// Select returns the results whose seed index is in set, in input order.
func Select(results []line.Result, set *roaring.Bitmap) []line.Result {
	out := make([]line.Result, 0, set.GetCardinality())
	for _, r := range results {
		if id, ok := seedID(r.SeedIndex); ok && set.Contains(id) {
			out = append(out, r)
		}
	}
	return out
}

func seedID(i int) (uint32, bool) {
	if i < 0 || uint64(i) > math.MaxUint32 {
		return 0, false
	}
	return uint32(i), true
}

func valid(r line.TerminationReason) bool {
	return r >= 0 && int(r) < line.NumReasons
}
