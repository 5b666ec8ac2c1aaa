package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	assert.Equal(t, int64(100), c.MemoryLimit())

	// Acquire 50
	err := c.AcquireMemory(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 50 more, exactly at the limit
	err = c.AcquireMemory(50)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.MemoryUsage())

	// Acquire 1 (should fail - limit exceeded)
	err = c.AcquireMemory(1)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(100), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})
	assert.Equal(t, int64(0), c.MemoryLimit())

	require.NoError(t, c.AcquireMemory(1000))
	require.NoError(t, c.AcquireMemory(1<<40))
	assert.Equal(t, int64(1000+1<<40), c.MemoryUsage())
}

func TestController_NonPositive(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})
	assert.NoError(t, c.AcquireMemory(-1))
	assert.NoError(t, c.AcquireMemory(0))
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_Seeds(t *testing.T) {
	c := NewController(Config{SeedsPerSecond: 1000})
	require.NoError(t, c.AcquireSeed(t.Context()))

	slow := NewController(Config{SeedsPerSecond: 0.001})
	// The first seed uses the burst.
	require.NoError(t, slow.AcquireSeed(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, slow.AcquireSeed(ctx), context.Canceled)

	// The next slot is far beyond the deadline.
	dctx, dcancel := context.WithTimeout(t.Context(), time.Minute)
	defer dcancel()
	assert.ErrorIs(t, slow.AcquireSeed(dctx), context.DeadlineExceeded)

	unlimited := NewController(Config{})
	for i := 0; i < 100; i++ {
		assert.NoError(t, unlimited.AcquireSeed(t.Context()))
	}
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	// All methods should be nil-safe
	assert.NoError(t, c.AcquireMemory(100))
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.NoError(t, c.AcquireSeed(context.Background()))
}
