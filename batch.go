package hyperline

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/hyperline/internal/resource"
	"github.com/hupe1980/hyperline/line"
)

// Approximate memory held by one point and by one metadata entry.
const (
	pointBytes    = int64(unsafe.Sizeof(line.Point{}))
	metadataBytes = int64(unsafe.Sizeof(r3.Vec{})) + 32
)

// BatchOptions configures TraceBatch.
type BatchOptions struct {
	// Workers is the number of seeds traced concurrently.
	// Defaults to runtime.GOMAXPROCS(0).
	Workers int

	// MemoryLimitBytes caps the memory of all produced lines. A batch that
	// exceeds it fails with ErrMemoryLimitExceeded.
	// If 0, unlimited.
	MemoryLimitBytes int64

	// SeedsPerSecond throttles how fast seeds are started.
	// If 0, unlimited.
	SeedsPerSecond float64
}

// TraceBatch traces every seed and returns the results in seed order, with
// SeedIndex set to the seed's position in seeds.
//
// Seeds are traced in parallel. ctx is checked between seeds, a single trace
// is never interrupted. On error no results are returned.
//
// Example:
//
//	results, err := tr.TraceBatch(ctx, seeds, func(o *hyperline.BatchOptions) {
//	    o.Workers = 8
//	    o.MemoryLimitBytes = 256 << 20
//	})
func (t *Tracer) TraceBatch(ctx context.Context, seeds []r3.Vec, optFns ...func(*BatchOptions)) ([]line.Result, error) {
	opts := BatchOptions{
		Workers: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	logger := t.logger.WithBatch(uuid.NewString())
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: opts.MemoryLimitBytes,
		SeedsPerSecond:   opts.SeedsPerSecond,
	})

	start := time.Now()
	results := make([]line.Result, len(seeds))
	var traced atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var waitErr error
	for i := range seeds {
		if gctx.Err() != nil {
			break
		}
		if err := rc.AcquireSeed(gctx); err != nil {
			waitErr = err
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := t.trace(seeds[i], i)
			if err := rc.AcquireMemory(lineBytes(&res.Line)); err != nil {
				return fmt.Errorf("seed %d: %w", i, err)
			}

			results[i] = res
			traced.Add(1)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = waitErr
	}
	if err == nil {
		err = ctx.Err()
	}

	d := time.Since(start)
	t.metrics.RecordBatch(len(seeds), rc.MemoryUsage(), d, err)
	logger.LogBatch(ctx, BatchStats{
		Seeds:       len(seeds),
		Traced:      int(traced.Load()),
		MemoryBytes: rc.MemoryUsage(),
		MemoryLimit: rc.MemoryLimit(),
	}, d, err)

	if err != nil {
		return nil, err
	}
	return results, nil
}

func lineBytes(l *line.Line) int64 {
	n := int64(len(l.Points)) * pointBytes
	for i := range l.Points {
		n += int64(len(l.Points[i].Metadata)) * metadataBytes
	}
	return n
}
