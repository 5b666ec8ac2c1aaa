package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits for one batch.
type Config struct {
	// MemoryLimitBytes is the hard limit for traced line memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// SeedsPerSecond caps how fast seeds are started.
	// If 0, unlimited.
	SeedsPerSecond float64
}

// Controller governs memory and throughput of a batch trace.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Throughput
	seedLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.SeedsPerSecond > 0 {
		burst := int(cfg.SeedsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.seedLimiter = rate.NewLimiter(rate.Limit(cfg.SeedsPerSecond), burst)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers control retry/backoff policy.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// MemoryUsage returns the bytes acquired so far.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireSeed waits until the throughput limit allows starting one more seed.
// If ctx expires first, or its deadline is too close to wait for the next
// slot, the error matches the context's error.
func (c *Controller) AcquireSeed(ctx context.Context) error {
	if c == nil || c.seedLimiter == nil {
		return nil
	}
	if err := c.seedLimiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if _, ok := ctx.Deadline(); ok {
			return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return err
	}
	return nil
}
