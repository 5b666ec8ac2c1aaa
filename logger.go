package hyperline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/hyperline/line"
)

// Logger wraps slog.Logger with tracer-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithBatch adds a batch identifier to the logger.
func (l *Logger) WithBatch(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch", id),
	}
}

// LogTrace logs a finished trace.
func (l *Logger) LogTrace(seed int, ln *line.Line, d time.Duration) {
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("trace completed",
		"seed", seed,
		"points", ln.Len(),
		"forward", ln.ForwardTermination.String(),
		"backward", ln.BackwardTermination.String(),
		"duration", d,
	)
}

// BatchStats summarizes a finished batch for logging.
type BatchStats struct {
	Seeds  int
	Traced int
	// MemoryBytes is the line memory held by the batch when it ended.
	MemoryBytes int64
	// MemoryLimit is the batch budget, 0 if unlimited.
	MemoryLimit int64
}

// LogBatch logs a finished batch.
func (l *Logger) LogBatch(ctx context.Context, s BatchStats, d time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch trace failed",
			"seeds", s.Seeds,
			"traced", s.Traced,
			"memory", s.MemoryBytes,
			"memoryLimit", s.MemoryLimit,
			"duration", d,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch trace completed",
			"seeds", s.Seeds,
			"memory", s.MemoryBytes,
			"duration", d,
		)
	}
}
