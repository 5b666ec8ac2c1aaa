// Package tensor adapts symmetric 3x3 tensor fields to the sampler.Sampler
// capability.
//
// Eigen turns a tensor field into the eigenvector field followed by a
// hyperstreamline. Eigenvectors have no canonical sign, so the resulting
// samplers are line fields: neighbouring samples may point in opposite
// directions and the tracer aligns them.
//
//	field := tensor.FuncField(func(p r3.Vec) *mat.SymDense {
//	    return mat.NewSymDense(3, []float64{3, 0, 0, 0, 2, 0, 0, 0, 1})
//	}, sampler.Box{Max: r3.Vec{X: 10, Y: 10, Z: 10}})
//
//	major := tensor.Eigen(field, tensor.Major)
//	fa := tensor.FractionalAnisotropy(field)
package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/sampler"
)

// Field is a symmetric tensor field.
type Field interface {
	// Tensor returns the 3x3 symmetric tensor at p.
	Tensor(p r3.Vec) *mat.SymDense
	// InDomain reports whether p lies inside the field's domain.
	InDomain(p r3.Vec) bool
}

type funcField struct {
	fn     func(r3.Vec) *mat.SymDense
	domain sampler.Domain
}

// FuncField wraps fn as a Field. A nil domain means sampler.Everywhere.
func FuncField(fn func(r3.Vec) *mat.SymDense, domain sampler.Domain) Field {
	if domain == nil {
		domain = sampler.Everywhere{}
	}
	return &funcField{fn: fn, domain: domain}
}

func (f *funcField) Tensor(p r3.Vec) *mat.SymDense { return f.fn(p) }

func (f *funcField) InDomain(p r3.Vec) bool { return f.domain.Contains(p) }

// Eigenvalue selects one of the three eigenpairs in ascending signed
// eigenvalue order: Minor is the smallest, Major the largest. For tensors
// with negative eigenvalues Major is therefore not the largest magnitude.
type Eigenvalue int

const (
	Minor Eigenvalue = iota
	Medium
	Major
)

func (e Eigenvalue) valid() bool { return e >= Minor && e <= Major }

func (e Eigenvalue) String() string {
	switch e {
	case Minor:
		return "minor"
	case Medium:
		return "medium"
	case Major:
		return "major"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

type eigenSampler struct {
	field Field
	which Eigenvalue
}

// Eigen returns a sampler yielding the selected eigenvector scaled by its
// eigenvalue. Eigenpairs are ordered by ascending eigenvalue. Positions
// outside the field's domain, tensors that cannot be factorized and an
// unknown which sample as the zero vector.
func Eigen(field Field, which Eigenvalue) sampler.Sampler {
	return &eigenSampler{field: field, which: which}
}

func (s *eigenSampler) InDomain(p r3.Vec) bool { return s.field.InDomain(p) }

func (s *eigenSampler) Sample(p r3.Vec) r3.Vec {
	if !s.which.valid() || !s.field.InDomain(p) {
		return r3.Vec{}
	}
	t := s.field.Tensor(p)
	if t == nil {
		return r3.Vec{}
	}

	var es mat.EigenSym
	if !es.Factorize(t, true) {
		return r3.Vec{}
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	col := int(s.which)
	v := r3.Vec{X: vecs.At(0, col), Y: vecs.At(1, col), Z: vecs.At(2, col)}
	return r3.Scale(vals[col], v)
}

// FractionalAnisotropy returns a scalar sampler (value in X) of the tensor's
// fractional anisotropy, in [0, 1]. Zero tensors have anisotropy 0.
func FractionalAnisotropy(field Field) sampler.Sampler {
	return &faSampler{field: field}
}

type faSampler struct {
	field Field
}

func (s *faSampler) InDomain(p r3.Vec) bool { return s.field.InDomain(p) }

func (s *faSampler) Sample(p r3.Vec) r3.Vec {
	if !s.field.InDomain(p) {
		return r3.Vec{}
	}
	t := s.field.Tensor(p)
	if t == nil {
		return r3.Vec{}
	}

	var es mat.EigenSym
	if !es.Factorize(t, false) {
		return r3.Vec{}
	}
	l := es.Values(nil)

	den := l[0]*l[0] + l[1]*l[1] + l[2]*l[2]
	if den == 0 {
		return r3.Vec{}
	}
	num := (l[0]-l[1])*(l[0]-l[1]) + (l[1]-l[2])*(l[1]-l[2]) + (l[2]-l[0])*(l[2]-l[0])
	return r3.Vec{X: math.Sqrt(0.5 * num / den)}
}
