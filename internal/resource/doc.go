// Package resource implements the resource controller used by batch tracing.
//
// The controller manages two resources:
//
//   - Memory: track and limit the bytes held by traced lines (non-blocking, fail-fast)
//   - Throughput: rate-limit how fast seeds are started (token bucket)
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic
// counter for usage. Reservations are held until the batch ends.
// AcquireMemory is non-blocking and returns immediately with
// ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(lineBytes); err != nil {
//	    // ErrMemoryLimitExceeded - the batch is too large
//	}
//	log.Printf("using %d of %d bytes", rc.MemoryUsage(), rc.MemoryLimit())
//
// # Seed Throughput
//
//	rc := resource.NewController(resource.Config{SeedsPerSecond: 500})
//	if err := rc.AcquireSeed(ctx); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
