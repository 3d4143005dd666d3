package cksum

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/cksum/internal/kernel"
)

// Logger wraps slog.Logger with cksum-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithInput adds an input name field to the logger.
func (l *Logger) WithInput(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("input", name),
	}
}

// WithKernelKind adds the selected engine to the logger.
func (l *Logger) WithKernelKind(k kernel.Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kernel", k.String()),
	}
}

// WithAlgorithm adds the algorithm to the logger.
func (l *Logger) WithAlgorithm(a Algorithm) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", a.String()),
	}
}

// LogChecksum logs the completion of one stream's computation.
func (l *Logger) LogChecksum(ctx context.Context, name string, res Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "checksum failed",
			"input", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "checksum completed",
			"input", name,
			"sum", res.Sum,
			"length", res.Length,
		)
	}
}

// LogVerify logs the outcome of a manifest verification for one entry.
func (l *Logger) LogVerify(ctx context.Context, name string, ok bool, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "verification failed",
			"input", name,
			"error", err,
		)
	case !ok:
		l.WarnContext(ctx, "checksum mismatch",
			"input", name,
		)
	default:
		l.DebugContext(ctx, "verification ok",
			"input", name,
		)
	}
}
