package hyperline

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/internal/hyperstep"
	"github.com/hupe1980/hyperline/line"
	"github.com/hupe1980/hyperline/sampler"
	"github.com/hupe1980/hyperline/transform"
)

// zeroVelocity is the sample magnitude below which a trace stops.
const zeroVelocity = 0x1p-52

// maxPrealloc caps the per-direction point buffer reserved up front.
const maxPrealloc = 1024

var schemes = map[IntegrationScheme]hyperstep.Func{
	RK4: hyperstep.RK4,
}

type metaSampler struct {
	name string
	s    sampler.Sampler
}

// Tracer traces hyperstreamlines through a line field.
//
// A Tracer is safe for concurrent use. Every trace works on its own state
// and only reads the samplers, which must themselves be safe for concurrent
// reads.
type Tracer struct {
	cfg     Config
	sampler sampler.Sampler
	step    hyperstep.Func
	params  hyperstep.Params

	seedTransform transform.Homogeneous
	toWorld       transform.Homogeneous

	mu               sync.RWMutex
	meta             []metaSampler // sorted by name, replaced on write
	worldSpaceOutput bool

	logger  *Logger
	metrics MetricsCollector
}

// New creates a tracer over s.
//
// It fails fast with ErrNilSampler, a *ConfigError from cfg.Validate,
// transform.ErrZeroTransform when a seed, world or model transform is the
// zero value, or transform.ErrSingularBasis when the sampler's model basis
// cannot be inverted.
func New(s sampler.Sampler, cfg Config, optFns ...Option) (*Tracer, error) {
	if s == nil {
		return nil, ErrNilSampler
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	basis := transform.IdentityBasis()
	toWorld := transform.Identity()
	if sp, ok := s.(sampler.Spatial); ok {
		toWorld = sp.DataToWorld()
		if o.basis == nil {
			model := sp.ModelMatrix()
			if model.IsZero() {
				return nil, fmt.Errorf("model matrix: %w", transform.ErrZeroTransform)
			}
			b, err := transform.NewBasis(model.Dense())
			if err != nil {
				return nil, err
			}
			basis = b
		}
	}
	if o.basis != nil {
		basis = *o.basis
	}
	if o.toWorld != nil {
		toWorld = *o.toWorld
	}
	if toWorld.IsZero() {
		return nil, fmt.Errorf("world transform: %w", transform.ErrZeroTransform)
	}

	seedTransform := transform.Identity()
	if o.seedTransform != nil {
		seedTransform = *o.seedTransform
	}
	if seedTransform.IsZero() {
		return nil, fmt.Errorf("seed transform: %w", transform.ErrZeroTransform)
	}

	t := &Tracer{
		cfg:     cfg,
		sampler: s,
		step:    schemes[cfg.IntegrationScheme],
		params: hyperstep.Params{
			StepSize:  cfg.StepSize,
			InvBasis:  basis,
			Normalize: cfg.NormalizeSamples,
			Sampler:   s,
		},
		seedTransform:    seedTransform,
		toWorld:          toWorld,
		worldSpaceOutput: o.worldSpaceOutput,
		logger:           o.logger,
		metrics:          o.metricsCollector,
	}

	for name, ms := range o.metaSamplers {
		t.AddMetaDataSampler(name, ms)
	}

	return t, nil
}

// Config returns the tracer's configuration.
func (t *Tracer) Config() Config {
	return t.cfg
}

// SeedTransformationMatrix returns the transform applied to seeds.
func (t *Tracer) SeedTransformationMatrix() transform.Homogeneous {
	return t.seedTransform
}

// SetTransformOutputToWorldSpace toggles reporting positions in world space.
func (t *Tracer) SetTransformOutputToWorldSpace(enabled bool) {
	t.mu.Lock()
	t.worldSpaceOutput = enabled
	t.mu.Unlock()
}

// IsTransformingOutputToWorldSpace reports whether positions are reported in
// world space.
func (t *Tracer) IsTransformingOutputToWorldSpace() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.worldSpaceOutput
}

// AddMetaDataSampler registers s under name. At every accepted point the
// sampler is evaluated and its value stored in the point's metadata; points
// outside its domain get no entry. Metadata never influences integration.
//
// Registering an existing name replaces its sampler, a nil sampler removes it.
// Traces already running keep the registry they started with.
func (t *Tracer) AddMetaDataSampler(name string, s sampler.Sampler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	meta := slices.DeleteFunc(slices.Clone(t.meta), func(m metaSampler) bool {
		return m.name == name
	})
	if s != nil {
		meta = append(meta, metaSampler{name: name, s: s})
		slices.SortFunc(meta, func(a, b metaSampler) int {
			return strings.Compare(a.name, b.name)
		})
	}
	t.meta = meta
}

// TraceFrom traces a single hyperstreamline from seed, given in seed space.
// The result's SeedIndex is 0.
func (t *Tracer) TraceFrom(seed r3.Vec) line.Result {
	return t.trace(seed, 0)
}

func (t *Tracer) trace(seed r3.Vec, seedIndex int) line.Result {
	start := time.Now()

	t.mu.RLock()
	meta, toWorld := t.meta, t.worldSpaceOutput
	t.mu.RUnlock()

	p := t.seedTransform.Apply(seed)

	var fwd, bwd []line.Point
	fwdReason, bwdReason := line.NotTraced, line.NotTraced
	if t.cfg.Direction.backward() {
		bwd, bwdReason = t.integrate(p, -t.cfg.StepSize, meta)
	}
	if t.cfg.Direction.forward() {
		fwd, fwdReason = t.integrate(p, t.cfg.StepSize, meta)
	}

	var v r3.Vec
	if t.sampler.InDomain(p) {
		v = t.sampler.Sample(p)
	}

	points := make([]line.Point, 0, len(bwd)+1+len(fwd))
	for i := len(bwd) - 1; i >= 0; i-- {
		points = append(points, bwd[i])
	}
	points = append(points, newPoint(p, v, meta))
	points = append(points, fwd...)

	if toWorld {
		for i := range points {
			points[i].Position = t.toWorld.Apply(points[i].Position)
		}
	}

	res := line.Result{
		Line: line.Line{
			Points:              points,
			SeedPoint:           len(bwd),
			ForwardTermination:  fwdReason,
			BackwardTermination: bwdReason,
		},
		SeedIndex: seedIndex,
	}

	d := time.Since(start)
	t.metrics.RecordTrace(d, len(points), fwdReason, bwdReason)
	t.logger.LogTrace(seedIndex, &res.Line, d)

	return res
}

// integrate runs one direction. h carries the direction's sign.
func (t *Tracer) integrate(p r3.Vec, h float64, meta []metaSampler) ([]line.Point, line.TerminationReason) {
	prm := t.params
	prm.StepSize = h

	pts := make([]line.Point, 0, min(t.cfg.Steps, maxPrealloc))
	flipped := false

	for range t.cfg.Steps {
		if !t.sampler.InDomain(p) {
			return pts, line.OutOfDomain
		}

		res := t.step(p, &prm, flipped)
		if r3.Norm(res.Sample) < zeroVelocity {
			return pts, line.ZeroVelocity
		}

		pts = append(pts, newPoint(res.Position, res.Sample, meta))
		p, flipped = res.Position, res.Flipped
	}

	return pts, line.MaxStepsReached
}

func newPoint(p, v r3.Vec, meta []metaSampler) line.Point {
	pt := line.Point{Position: p, Vector: v}
	for _, m := range meta {
		if !m.s.InDomain(p) {
			continue
		}
		if pt.Metadata == nil {
			pt.Metadata = make(map[string]r3.Vec, len(meta))
		}
		pt.Metadata[m.name] = m.s.Sample(p)
	}
	return pt
}
