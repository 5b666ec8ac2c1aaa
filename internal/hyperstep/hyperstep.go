// Package hyperstep implements the single integration step of the
// hyperstreamline tracer: a fourth-order Runge-Kutta step over a line field.
//
// An eigenvector field only defines a direction up to sign. Each stage sample
// is therefore aligned with the previous stage before it is used, and the
// alignment of the last stage is carried into the next step so that a trace
// never reverses at a step boundary.
package hyperstep

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/transform"
)

// Sampler is the part of sampler.Sampler a step needs.
type Sampler interface {
	Sample(p r3.Vec) r3.Vec
}

// Params are the step inputs that stay fixed during a trace.
type Params struct {
	// StepSize is signed: negative values trace backward.
	StepSize float64
	// InvBasis maps world displacements into sampler displacements.
	InvBasis transform.Basis
	// Normalize turns every stage sample into a unit vector.
	Normalize bool
	Sampler   Sampler
}

// Result is the outcome of one step.
type Result struct {
	Position r3.Vec
	// Sample is the aligned initial stage sample k1.
	Sample r3.Vec
	// Flipped reports whether the last stage had to be negated. The next
	// step must negate its first sample when set.
	Flipped bool
}

// Func advances p by one step.
type Func func(p r3.Vec, prm *Params, prevFlipped bool) Result

// RK4 performs one sign-consistent classic Runge-Kutta step from p.
func RK4(p r3.Vec, prm *Params, prevFlipped bool) Result {
	h := prm.StepSize
	s := prm.Sampler

	k1 := s.Sample(p)
	if prevFlipped {
		k1 = r3.Scale(-1, k1)
	}

	k2, _ := Align(k1, s.Sample(prm.Move(p, k1, h/2)))
	k3, _ := Align(k2, s.Sample(prm.Move(p, k2, h/2)))
	k4, flipped := Align(k3, s.Sample(prm.Move(p, k3, h)))

	k := r3.Add(r3.Add(k1, r3.Scale(2, k2)), r3.Add(r3.Scale(2, k3), k4))
	if prm.Normalize {
		k = Normalize(k)
	} else {
		k = div(k, 6)
	}

	return Result{
		Position: prm.Move(p, k, h),
		Sample:   k1,
		Flipped:  flipped,
	}
}

// Move returns p displaced by v scaled with h, mapped through the inverse
// basis. v is normalized first when Normalize is set.
func (prm *Params) Move(p, v r3.Vec, h float64) r3.Vec {
	if prm.Normalize {
		v = Normalize(v)
	}
	return r3.Add(p, prm.InvBasis.MulVec(r3.Scale(h, v)))
}

// Align returns v negated if it points into the half-space opposite to ref,
// together with whether it was negated. Zero vectors are never negated.
func Align(ref, v r3.Vec) (r3.Vec, bool) {
	if r3.Dot(ref, v) < 0 {
		return r3.Scale(-1, v), true
	}
	return v, false
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v r3.Vec) r3.Vec {
	l := r3.Norm(v)
	if l == 0 {
		return v
	}
	return div(v, l)
}

func div(v r3.Vec, d float64) r3.Vec {
	return r3.Vec{X: v.X / d, Y: v.Y / d, Z: v.Z / d}
}
