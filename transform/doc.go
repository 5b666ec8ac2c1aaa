// Package transform provides the coordinate transforms used when tracing
// hyperstreamlines.
//
// Three spaces are involved:
//
//   - seed space: where callers specify seed points (normalized, screen or
//     coarse-grid coordinates)
//   - sampler space: the coordinate system of the field sampler, usually the
//     index space of a volume
//   - world space: where output lines are reported when requested
//
// Homogeneous is a 4x4 matrix applied with a perspective divide. It maps seed
// space to sampler space and sampler space to world space.
//
// Basis is the inverse of the sampler's 3x3 model basis. It maps a world
// displacement (a sampled direction times a step length) into a sampler
// displacement so that a step of a given physical length lands correctly in
// the sampler's coordinate system.
//
// # Usage
//
//	model := mat.NewDense(3, 3, []float64{
//	    0.5, 0, 0,
//	    0, 0.5, 0,
//	    0, 0, 2,
//	})
//	basis, err := transform.NewBasis(model)
//	if err != nil {
//	    // ErrSingularBasis
//	}
//	d := basis.MulVec(r3.Vec{X: 1}) // {2, 0, 0}
//
//	seeds := transform.Scaling(r3.Vec{X: 63, Y: 63, Z: 31})
//	p := seeds.Apply(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5})
package transform
