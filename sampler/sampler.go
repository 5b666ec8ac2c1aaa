// Package sampler defines the spatial sampling capability consumed by the
// tracer, together with a few reference implementations.
//
// A Sampler evaluates a field at a continuous position in sampler space and
// reports whether a position lies inside its valid domain. Implementations
// must be safe for concurrent use by multiple goroutines; all samplers in
// this package are.
package sampler

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/transform"
)

// Sampler evaluates a vector field.
type Sampler interface {
	// Sample returns the field value at p.
	Sample(p r3.Vec) r3.Vec
	// InDomain reports whether p lies inside the field's valid domain.
	InDomain(p r3.Vec) bool
}

// Spatial is implemented by samplers that know how their space relates to
// world space.
type Spatial interface {
	// ModelMatrix returns the model basis (3x3 upper-left block is used).
	ModelMatrix() transform.Homogeneous
	// DataToWorld maps sampler positions into world space.
	DataToWorld() transform.Homogeneous
}

// Domain describes a region of sampler space.
type Domain interface {
	Contains(p r3.Vec) bool
}

// Box is an axis-aligned box. Both bounds are inclusive.
type Box struct {
	Min, Max r3.Vec
}

// Contains implements Domain.
func (b Box) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Everywhere is the unbounded domain.
type Everywhere struct{}

// Contains implements Domain.
func (Everywhere) Contains(r3.Vec) bool { return true }

type funcSampler struct {
	field  func(r3.Vec) r3.Vec
	domain Domain
}

// Func returns a sampler evaluating field inside domain. Outside the domain
// Sample returns the zero vector. A nil domain means Everywhere.
func Func(field func(r3.Vec) r3.Vec, domain Domain) Sampler {
	if domain == nil {
		domain = Everywhere{}
	}
	return &funcSampler{field: field, domain: domain}
}

func (s *funcSampler) Sample(p r3.Vec) r3.Vec {
	if !s.domain.Contains(p) {
		return r3.Vec{}
	}
	return s.field(p)
}

func (s *funcSampler) InDomain(p r3.Vec) bool {
	return s.domain.Contains(p)
}

// Constant returns a sampler with the same value everywhere in domain.
func Constant(v r3.Vec, domain Domain) Sampler {
	return Func(func(r3.Vec) r3.Vec { return v }, domain)
}

// Scalar returns a sampler for a scalar field. The value is carried in X.
func Scalar(field func(r3.Vec) float64, domain Domain) Sampler {
	return Func(func(p r3.Vec) r3.Vec { return r3.Vec{X: field(p)} }, domain)
}
