package sampler

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/transform"
)

// ErrInvalidSpacing is returned when a grid spacing component is not positive.
var ErrInvalidSpacing = errors.New("grid spacing must be positive")

// ErrGridShape indicates that grid dimensions and data length disagree.
type ErrGridShape struct {
	Dims   [3]int
	Values int
}

func (e *ErrGridShape) Error() string {
	return fmt.Sprintf("grid shape %dx%dx%d does not match %d values", e.Dims[0], e.Dims[1], e.Dims[2], e.Values)
}

// GridOptions configures a Grid.
type GridOptions struct {
	// Spacing is the world distance between neighbouring samples per axis.
	// Defaults to {1, 1, 1}.
	Spacing r3.Vec

	// Origin is the world position of sample (0, 0, 0).
	Origin r3.Vec

	// AlignSigns treats the samples as a line field: before blending, every
	// corner is negated if it points away from the strongest corner.
	// Defaults to true.
	AlignSigns bool
}

// Grid samples a regular lattice of vectors with trilinear interpolation.
//
// Positions are in index space: sample (i, j, k) sits at {i, j, k} and the
// domain is [0, n-1] on every axis.
type Grid struct {
	dims [3]int
	data []r3.Vec
	opts GridOptions
}

// NewGrid creates a grid sampler over data laid out x-fastest:
// data[x + nx*(y + ny*z)]. The data slice is retained, not copied.
func NewGrid(dims [3]int, data []r3.Vec, optFns ...func(*GridOptions)) (*Grid, error) {
	opts := GridOptions{
		Spacing:    r3.Vec{X: 1, Y: 1, Z: 1},
		AlignSigns: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if dims[0] < 1 || dims[1] < 1 || dims[2] < 1 || dims[0]*dims[1]*dims[2] != len(data) {
		return nil, &ErrGridShape{Dims: dims, Values: len(data)}
	}
	if opts.Spacing.X <= 0 || opts.Spacing.Y <= 0 || opts.Spacing.Z <= 0 {
		return nil, ErrInvalidSpacing
	}

	return &Grid{dims: dims, data: data, opts: opts}, nil
}

// Dims returns the number of samples per axis.
func (g *Grid) Dims() [3]int { return g.dims }

// InDomain implements Sampler.
func (g *Grid) InDomain(p r3.Vec) bool {
	return p.X >= 0 && p.X <= float64(g.dims[0]-1) &&
		p.Y >= 0 && p.Y <= float64(g.dims[1]-1) &&
		p.Z >= 0 && p.Z <= float64(g.dims[2]-1)
}

// Sample implements Sampler. Outside the domain it returns the zero vector.
func (g *Grid) Sample(p r3.Vec) r3.Vec {
	if !g.InDomain(p) {
		return r3.Vec{}
	}

	x0, tx := cell(p.X, g.dims[0])
	y0, ty := cell(p.Y, g.dims[1])
	z0, tz := cell(p.Z, g.dims[2])
	x1, y1, z1 := next(x0, g.dims[0]), next(y0, g.dims[1]), next(z0, g.dims[2])

	c := [8]r3.Vec{
		g.at(x0, y0, z0), g.at(x1, y0, z0), g.at(x0, y1, z0), g.at(x1, y1, z0),
		g.at(x0, y0, z1), g.at(x1, y0, z1), g.at(x0, y1, z1), g.at(x1, y1, z1),
	}

	if g.opts.AlignSigns {
		alignCorners(&c)
	}

	lerp := func(a, b r3.Vec, t float64) r3.Vec {
		return r3.Add(r3.Scale(1-t, a), r3.Scale(t, b))
	}

	c00 := lerp(c[0], c[1], tx)
	c10 := lerp(c[2], c[3], tx)
	c01 := lerp(c[4], c[5], tx)
	c11 := lerp(c[6], c[7], tx)

	return lerp(lerp(c00, c10, ty), lerp(c01, c11, ty), tz)
}

// ModelMatrix implements Spatial.
func (g *Grid) ModelMatrix() transform.Homogeneous {
	return transform.Scaling(g.opts.Spacing)
}

// DataToWorld implements Spatial.
func (g *Grid) DataToWorld() transform.Homogeneous {
	return transform.Translation(g.opts.Origin).Mul(transform.Scaling(g.opts.Spacing))
}

func (g *Grid) at(x, y, z int) r3.Vec {
	return g.data[x+g.dims[0]*(y+g.dims[1]*z)]
}

// cell returns the lower lattice index and the fractional offset along one
// axis. The last sample belongs to the last cell.
func cell(v float64, n int) (int, float64) {
	if n == 1 {
		return 0, 0
	}
	i := int(math.Floor(v))
	if i >= n-1 {
		i = n - 2
	}
	return i, v - float64(i)
}

func next(i, n int) int {
	if n == 1 {
		return i
	}
	return i + 1
}

func alignCorners(c *[8]r3.Vec) {
	ref := 0
	best := r3.Norm2(c[0])
	for i := 1; i < len(c); i++ {
		if n := r3.Norm2(c[i]); n > best {
			ref, best = i, n
		}
	}
	for i := range c {
		if r3.Dot(c[ref], c[i]) < 0 {
			c[i] = r3.Scale(-1, c[i])
		}
	}
}
