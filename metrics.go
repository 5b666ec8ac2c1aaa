package hyperline

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/hyperline/line"
)

// MetricsCollector defines an interface for collecting tracing metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use: batch tracing records
// from several goroutines.
type MetricsCollector interface {
	// RecordTrace is called after each traced seed.
	// points is the number of points of the produced line.
	RecordTrace(duration time.Duration, points int, forward, backward line.TerminationReason)

	// RecordBatch is called after each batch.
	// seeds is the number of seeds requested, memoryBytes the line memory
	// held when the batch ended, err is nil if successful.
	RecordBatch(seeds int, memoryBytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTrace(time.Duration, int, line.TerminationReason, line.TerminationReason) {
}
func (NoopMetricsCollector) RecordBatch(int, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TraceCount      atomic.Int64
	TracePoints     atomic.Int64
	TraceTotalNanos atomic.Int64
	BatchCount      atomic.Int64
	BatchSeeds      atomic.Int64
	BatchErrors     atomic.Int64
	BatchMemory     atomic.Int64

	forward  [line.NumReasons]atomic.Int64
	backward [line.NumReasons]atomic.Int64
}

// RecordTrace implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTrace(duration time.Duration, points int, forward, backward line.TerminationReason) {
	b.TraceCount.Add(1)
	b.TracePoints.Add(int64(points))
	b.TraceTotalNanos.Add(duration.Nanoseconds())
	if valid(forward) {
		b.forward[forward].Add(1)
	}
	if valid(backward) {
		b.backward[backward].Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(seeds int, memoryBytes int64, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchSeeds.Add(int64(seeds))
	b.BatchMemory.Add(memoryBytes)
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		TraceCount:    b.TraceCount.Load(),
		TracePoints:   b.TracePoints.Load(),
		TraceAvgNanos: b.getAvgTraceNanos(),
		BatchCount:    b.BatchCount.Load(),
		BatchSeeds:    b.BatchSeeds.Load(),
		BatchErrors:   b.BatchErrors.Load(),
		BatchMemory:   b.BatchMemory.Load(),
	}
	for i := range line.NumReasons {
		s.Forward[i] = b.forward[i].Load()
		s.Backward[i] = b.backward[i].Load()
	}
	return s
}

func (b *BasicMetricsCollector) getAvgTraceNanos() int64 {
	count := b.TraceCount.Load()
	if count == 0 {
		return 0
	}
	return b.TraceTotalNanos.Load() / count
}

func valid(r line.TerminationReason) bool {
	return r >= 0 && int(r) < line.NumReasons
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	TraceCount    int64
	TracePoints   int64
	TraceAvgNanos int64
	BatchCount    int64
	BatchSeeds    int64
	BatchErrors   int64
	// BatchMemory is the line memory summed over all batches, in bytes.
	BatchMemory   int64

	// Forward and Backward count traces per termination reason.
	Forward  [line.NumReasons]int64
	Backward [line.NumReasons]int64
}
