package hyperline

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hyperline/line"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	assert.Equal(t, int64(0), m.GetStats().TraceAvgNanos)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordTrace(10*time.Nanosecond, 3, line.MaxStepsReached, line.OutOfDomain)
		}()
	}
	wg.Wait()

	m.RecordTrace(90*time.Nanosecond, 1, line.ZeroVelocity, line.TerminationReason(42))
	m.RecordBatch(9, 512, time.Millisecond, nil)
	m.RecordBatch(3, 128, time.Millisecond, errors.New("boom"))

	s := m.GetStats()
	assert.Equal(t, int64(9), s.TraceCount)
	assert.Equal(t, int64(25), s.TracePoints)
	assert.Equal(t, int64(170/9), s.TraceAvgNanos)
	assert.Equal(t, int64(8), s.Forward[line.MaxStepsReached])
	assert.Equal(t, int64(1), s.Forward[line.ZeroVelocity])
	assert.Equal(t, int64(8), s.Backward[line.OutOfDomain])
	assert.Equal(t, int64(2), s.BatchCount)
	assert.Equal(t, int64(12), s.BatchSeeds)
	assert.Equal(t, int64(1), s.BatchErrors)
	assert.Equal(t, int64(640), s.BatchMemory)
}

func TestApplyOptionsDefaults(t *testing.T) {
	o := applyOptions([]Option{nil, WithLogger(nil), WithMetricsCollector(nil)})

	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
	assert.Nil(t, o.basis)
	assert.Nil(t, o.seedTransform)
}
