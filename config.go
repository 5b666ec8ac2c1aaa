package hyperline

import (
	"fmt"
	"math"
)

// Direction selects which way a hyperstreamline is traced from its seed.
type Direction int

const (
	Forward Direction = iota
	Backward
	Both
)

var directionNames = [...]string{
	Forward:  "forward",
	Backward: "backward",
	Both:     "both",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(directionNames) {
		return nil, &ConfigError{Field: "direction", Value: int(d), cause: ErrInvalidDirection}
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	for i, name := range directionNames {
		if name == string(text) {
			*d = Direction(i)
			return nil
		}
	}
	return &ConfigError{Field: "direction", Value: string(text), cause: ErrInvalidDirection}
}

func (d Direction) forward() bool  { return d == Forward || d == Both }
func (d Direction) backward() bool { return d == Backward || d == Both }

// IntegrationScheme selects the step primitive.
type IntegrationScheme int

const (
	// RK4 is the sign-consistent fourth-order Runge-Kutta step.
	RK4 IntegrationScheme = iota
)

func (s IntegrationScheme) String() string {
	switch s {
	case RK4:
		return "rk4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s IntegrationScheme) MarshalText() ([]byte, error) {
	if s != RK4 {
		return nil, &ConfigError{Field: "integrationScheme", Value: int(s), cause: ErrUnsupportedScheme}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *IntegrationScheme) UnmarshalText(text []byte) error {
	if string(text) != RK4.String() {
		return &ConfigError{Field: "integrationScheme", Value: string(text), cause: ErrUnsupportedScheme}
	}
	*s = RK4
	return nil
}

// Config controls a trace. It is owned by the caller and only read by the
// tracer.
type Config struct {
	// Steps is the maximum number of accepted steps per direction.
	Steps int `json:"steps"`

	// StepSize is the length of one step. The sign is applied internally
	// per direction, so it must be positive.
	StepSize float64 `json:"stepSize"`

	// Direction selects forward, backward or bidirectional tracing.
	Direction Direction `json:"direction"`

	// NormalizeSamples makes every step exactly StepSize long in world
	// units. Otherwise the sampled magnitude scales the step.
	NormalizeSamples bool `json:"normalizeSamples"`

	// IntegrationScheme selects the step primitive. Only RK4 is supported.
	IntegrationScheme IntegrationScheme `json:"integrationScheme"`
}

// DefaultConfig returns a forward, normalized RK4 configuration.
func DefaultConfig() Config {
	return Config{
		Steps:             100,
		StepSize:          0.1,
		Direction:         Forward,
		NormalizeSamples:  true,
		IntegrationScheme: RK4,
	}
}

// Validate checks the configuration. It returns a *ConfigError.
func (c Config) Validate() error {
	if c.Steps < 0 {
		return &ConfigError{Field: "steps", Value: c.Steps, cause: ErrInvalidSteps}
	}
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		return &ConfigError{Field: "stepSize", Value: c.StepSize, cause: ErrInvalidStepSize}
	}
	if c.Direction < Forward || c.Direction > Both {
		return &ConfigError{Field: "direction", Value: int(c.Direction), cause: ErrInvalidDirection}
	}
	if c.IntegrationScheme != RK4 {
		return &ConfigError{Field: "integrationScheme", Value: int(c.IntegrationScheme), cause: ErrUnsupportedScheme}
	}
	return nil
}
