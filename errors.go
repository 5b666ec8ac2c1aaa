package hyperline

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hyperline/internal/resource"
)

var (
	// ErrNilSampler is returned when a tracer is created without a sampler.
	ErrNilSampler = errors.New("sampler must not be nil")

	// ErrInvalidSteps is returned when the step budget is negative.
	ErrInvalidSteps = errors.New("steps must not be negative")

	// ErrInvalidStepSize is returned when the step size is not a positive finite number.
	ErrInvalidStepSize = errors.New("step size must be positive and finite")

	// ErrInvalidDirection is returned for an unknown trace direction.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrUnsupportedScheme is returned for an unknown integration scheme.
	ErrUnsupportedScheme = errors.New("unsupported integration scheme")

	// ErrMemoryLimitExceeded is returned when a batch would produce more
	// points than its memory budget allows.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ConfigError reports an invalid configuration value.
//
// The sentinel describing the violation can be matched with errors.Is.
type ConfigError struct {
	Field string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %v", e.Field, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }
