package line

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// TerminationReason is the cause that stopped integration in one direction.
type TerminationReason int

const (
	// NotTraced marks a direction that was not requested.
	NotTraced TerminationReason = iota
	// OutOfDomain means the trace left the sampler's domain.
	OutOfDomain
	// ZeroVelocity means the sampled field vanished.
	ZeroVelocity
	// MaxStepsReached means the step budget was exhausted.
	MaxStepsReached
)

// NumReasons is the number of defined termination reasons.
const NumReasons = int(MaxStepsReached) + 1

var reasonNames = [NumReasons]string{
	NotTraced:       "not-traced",
	OutOfDomain:     "out-of-domain",
	ZeroVelocity:    "zero-velocity",
	MaxStepsReached: "max-steps",
}

func (r TerminationReason) String() string {
	if r < 0 || int(r) >= NumReasons {
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
	return reasonNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r TerminationReason) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= NumReasons {
		return nil, fmt.Errorf("unknown termination reason: %d", int(r))
	}
	return []byte(reasonNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *TerminationReason) UnmarshalText(text []byte) error {
	for i, name := range reasonNames {
		if name == string(text) {
			*r = TerminationReason(i)
			return nil
		}
	}
	return fmt.Errorf("unknown termination reason: %q", text)
}

// Point is a single vertex of a hyperstreamline.
type Point struct {
	Position r3.Vec
	// Vector is the sign-aligned field sample that produced this point.
	Vector r3.Vec
	// Metadata holds auxiliary samples keyed by sampler name.
	Metadata map[string]r3.Vec
}

// Line is a traced hyperstreamline.
type Line struct {
	Points []Point
	// SeedPoint is the index of the seed within Points.
	SeedPoint int

	ForwardTermination  TerminationReason
	BackwardTermination TerminationReason
}

// Len returns the number of points.
func (l *Line) Len() int {
	return len(l.Points)
}

// Forward returns the seed followed by the forward points.
func (l *Line) Forward() []Point {
	if len(l.Points) == 0 {
		return nil
	}
	return l.Points[l.SeedPoint:]
}

// Backward returns the seed followed by the backward points, in the order
// they were traced.
func (l *Line) Backward() []Point {
	if len(l.Points) == 0 {
		return nil
	}
	pts := slices.Clone(l.Points[:l.SeedPoint+1])
	slices.Reverse(pts)
	return pts
}

// Positions returns the point positions in traversal order.
func (l *Line) Positions() []r3.Vec {
	out := make([]r3.Vec, len(l.Points))
	for i := range l.Points {
		out[i] = l.Points[i].Position
	}
	return out
}

// ArcLength returns the summed length of all segments.
func (l *Line) ArcLength() float64 {
	var sum float64
	for i := 1; i < len(l.Points); i++ {
		sum += r3.Norm(r3.Sub(l.Points[i].Position, l.Points[i-1].Position))
	}
	return sum
}

// Tortuosity returns the arc length divided by the distance between the end
// points. It is 1 for a straight line and 0 for lines with coincident ends.
func (l *Line) Tortuosity() float64 {
	if len(l.Points) < 2 {
		return 0
	}
	chord := r3.Norm(r3.Sub(l.Points[len(l.Points)-1].Position, l.Points[0].Position))
	if chord == 0 {
		return 0
	}
	return l.ArcLength() / chord
}

// Result is the outcome of tracing one seed.
type Result struct {
	Line Line
	// SeedIndex identifies the seed within the batch that produced Line.
	SeedIndex int
}
