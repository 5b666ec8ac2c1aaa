package hyperline

import (
	"log/slog"

	"github.com/hupe1980/hyperline/sampler"
	"github.com/hupe1980/hyperline/transform"
)

type options struct {
	basis            *transform.Basis
	seedTransform    *transform.Homogeneous
	toWorld          *transform.Homogeneous
	worldSpaceOutput bool
	metaSamplers     map[string]sampler.Sampler
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Tracer.
type Option func(*options)

// WithBasis sets the inverse basis that maps world displacements into
// sampler displacements.
//
// By default the basis is derived from samplers implementing
// sampler.Spatial and is the identity otherwise.
func WithBasis(b transform.Basis) Option {
	return func(o *options) {
		o.basis = &b
	}
}

// WithSeedTransform sets the transform from seed space into sampler space.
// Defaults to the identity.
//
// Example, seeds given in [0,1]^3 over a 64^3 grid:
//
//	hyperline.WithSeedTransform(transform.Scaling(r3.Vec{X: 63, Y: 63, Z: 63}))
func WithSeedTransform(h transform.Homogeneous) Option {
	return func(o *options) {
		o.seedTransform = &h
	}
}

// WithWorldTransform sets the transform from sampler space into world space
// used when world-space output is enabled.
//
// By default it is taken from samplers implementing sampler.Spatial and is
// the identity otherwise.
func WithWorldTransform(h transform.Homogeneous) Option {
	return func(o *options) {
		o.toWorld = &h
	}
}

// WithWorldSpaceOutput reports line positions in world space instead of
// sampler space.
func WithWorldSpaceOutput(enabled bool) Option {
	return func(o *options) {
		o.worldSpaceOutput = enabled
	}
}

// WithMetaDataSampler registers an auxiliary sampler evaluated at every
// accepted point. See Tracer.AddMetaDataSampler.
func WithMetaDataSampler(name string, s sampler.Sampler) Option {
	return func(o *options) {
		if o.metaSamplers == nil {
			o.metaSamplers = make(map[string]sampler.Sampler)
		}
		o.metaSamplers[name] = s
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hyperline.BasicMetricsCollector{}
//	tr, _ := hyperline.New(s, cfg, hyperline.WithMetricsCollector(metrics))
//	// ... trace ...
//	stats := metrics.GetStats()
//	fmt.Printf("Traces: %d, Avg latency: %dns\n", stats.TraceCount, stats.TraceAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := hyperline.NewJSONLogger(slog.LevelInfo)
//	tr, _ := hyperline.New(s, cfg, hyperline.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
