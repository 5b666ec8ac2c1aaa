// Package hyperline traces hyperstreamlines through line fields.
//
// A line field assigns every position a direction that is only defined up to
// sign, as produced by the eigenvectors of a symmetric tensor field (for
// example diffusion or stress tensors). Plain streamline integration over
// such a field zig-zags whenever the stored sign of neighbouring samples
// disagrees. The tracer in this package aligns every Runge-Kutta stage with
// the previous one and carries that alignment across step boundaries, so
// traced lines follow the field smoothly.
//
// # Quick Start
//
//	field := tensor.FuncField(myTensor, sampler.Box{Max: r3.Vec{X: 63, Y: 63, Z: 63}})
//
//	cfg := hyperline.DefaultConfig()
//	cfg.Direction = hyperline.Both
//
//	tr, err := hyperline.New(tensor.Eigen(field, tensor.Major), cfg,
//	    hyperline.WithMetaDataSampler("fa", tensor.FractionalAnisotropy(field)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := tr.TraceFrom(r3.Vec{X: 32, Y: 32, Z: 32})
//
// # Samplers and Spaces
//
// Tracing happens in sampler space. Three transforms relate it to the
// outside world:
//
//   - The seed transform maps seeds into sampler space (WithSeedTransform).
//   - The inverse basis maps world-length displacements into sampler
//     displacements, so StepSize is measured in world units (WithBasis).
//   - The world transform maps output positions into world space when
//     world-space output is enabled (WithWorldTransform,
//     Tracer.SetTransformOutputToWorldSpace).
//
// Samplers implementing sampler.Spatial, such as sampler.Grid, supply the
// basis and world transform themselves.
//
// # Termination
//
// Each direction stops when the position leaves the sampler's domain, when
// the field vanishes, or when Config.Steps steps have been taken. The reason
// is reported per direction in line.Line. The seed point is always part of
// the result.
//
// # Batches
//
// Tracer.TraceBatch traces many seeds on a bounded worker pool. Results
// come back in seed order and are identical to tracing each seed alone.
// Batches can be throttled and capped in memory with BatchOptions; the
// lineindex package filters the results by termination reason and length.
//
// # Observability
//
// Structured logging uses log/slog through WithLogger; per-trace records
// are emitted at debug level. Metrics are collected through a
// MetricsCollector (see BasicMetricsCollector).
package hyperline
