package prodcat

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/prodcat/model"
)

// Logger wraps slog.Logger with catalog-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// WithRunID adds a run identifier field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogReplace logs a slot replacement. removed is nil when the replacement
// failed or when the removed product is not known yet.
func (l *Logger) LogReplace(slot int, removed, added *model.Product, err error) {
	if err != nil {
		l.Error("replace failed",
			"slot", slot,
			"error", err,
		)
		return
	}
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"slot", slot, "added", added.ID()}
	if removed != nil {
		attrs = append(attrs, "removed", removed.ID())
	}
	l.Debug("replace completed", attrs...)
}

// LogSearch logs a keyword search.
func (l *Logger) LogSearch(mode string, keywords, results int) {
	l.Debug("search completed",
		"mode", mode,
		"keywords", keywords,
		"results", results,
	)
}

// LogRebuild logs a completed snapshot rebuild.
func (l *Logger) LogRebuild(ctx context.Context, generation uint64, applied int, duration time.Duration) {
	l.InfoContext(ctx, "rebuild completed",
		"generation", generation,
		"applied", applied,
		"duration", duration,
	)
}
