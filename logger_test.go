package hyperline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hyperline/line"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ln := &line.Line{
		Points:              make([]line.Point, 3),
		ForwardTermination:  line.ZeroVelocity,
		BackwardTermination: line.NotTraced,
	}
	logger.LogTrace(7, ln, time.Millisecond)
	assert.Contains(t, buf.String(), "seed=7")
	assert.Contains(t, buf.String(), "points=3")
	assert.Contains(t, buf.String(), "forward=zero-velocity")

	buf.Reset()
	logger.WithBatch("b-1").LogBatch(context.Background(), BatchStats{Seeds: 10, Traced: 4, MemoryBytes: 2048, MemoryLimit: 1024}, time.Second, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "batch=b-1")
	assert.Contains(t, buf.String(), "traced=4")
	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "memory=2048")
	assert.Contains(t, buf.String(), "memoryLimit=1024")
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.LogTrace(1, &line.Line{}, time.Millisecond)
	assert.Empty(t, buf.String())

	NoopLogger().LogBatch(context.Background(), BatchStats{Seeds: 1, Traced: 1}, time.Second, nil)
	assert.NotNil(t, NewLogger(nil))
}
