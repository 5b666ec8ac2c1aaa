// Package testutil provides testing utilities for hyperline.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random seeds and for building line
// fields whose stored sign is deliberately inconsistent.
//
// # Random Seeds
//
//	rng := testutil.NewRNG(seed)
//	seeds := rng.PointsIn(100, sampler.Box{Max: r3.Vec{X: 10, Y: 10, Z: 10}})
//
// # Sign Scrambling
//
//	field := testutil.SignScrambled{Inner: s, CellSize: 0.5}
package testutil
