package testutil

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/sampler"
)

// RNG struct encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// PointsIn returns num points drawn uniformly from box.
// Locks only once per call.
func (r *RNG) PointsIn(num int, box sampler.Box) []r3.Vec {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r3.Sub(box.Max, box.Min)
	out := make([]r3.Vec, num)
	for i := range out {
		out[i] = r3.Vec{
			X: box.Min.X + r.rand.Float64()*size.X,
			Y: box.Min.Y + r.rand.Float64()*size.Y,
			Z: box.Min.Z + r.rand.Float64()*size.Z,
		}
	}
	return out
}

// UnitVector returns a uniformly distributed unit vector.
func (r *RNG) UnitVector() r3.Vec {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		v := r3.Vec{X: r.rand.NormFloat64(), Y: r.rand.NormFloat64(), Z: r.rand.NormFloat64()}
		if n := r3.Norm(v); n > 1e-9 {
			return r3.Scale(1/n, v)
		}
	}
}

// SignScrambled wraps a sampler and negates its samples in a pseudo-random,
// position-dependent pattern of cubic cells. The line field is unchanged, so
// a sign-aware tracer must produce the same line as for the inner sampler.
type SignScrambled struct {
	Inner sampler.Sampler
	// CellSize is the edge length of the cells sharing one sign.
	CellSize float64
	// Salt varies the pattern.
	Salt uint64
}

// Sample implements sampler.Sampler.
func (s SignScrambled) Sample(p r3.Vec) r3.Vec {
	v := s.Inner.Sample(p)
	if s.negative(p) {
		return r3.Scale(-1, v)
	}
	return v
}

// InDomain implements sampler.Sampler.
func (s SignScrambled) InDomain(p r3.Vec) bool {
	return s.Inner.InDomain(p)
}

func (s SignScrambled) negative(p r3.Vec) bool {
	size := s.CellSize
	if size <= 0 {
		size = 1
	}
	h := s.Salt ^ 0x9e3779b97f4a7c15
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		h ^= uint64(int64(math.Floor(c / size)))
		h *= 0xbf58476d1ce4e5b9
		h ^= h >> 31
	}
	return h&1 == 1
}
