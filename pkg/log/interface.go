// Package log provides a structured logging interface for scistat routines.
//
// The interface is slog-compatible and is injected into optimizers and
// estimators as a collaborator (see the WithLogger options). Nothing in the
// library writes to a process-wide logger; the default is Nop().
//
// Backends:
//   - NewZerologLogger: github.com/rs/zerolog JSON output
//   - NewSlogLogger: any log/slog handler, wrapped with ErrFmtHandler
//   - NewTestLogger: in-memory capture for tests
//
// Example usage:
//
//	logger := log.NewZerologLogger(os.Stderr, log.LevelDebug).With(
//	    log.ComponentKey, "gradient",
//	)
//	res, err := gradient.MinimizeBatch(f, df, theta0, gradient.WithLogger(logger))
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. The With method returns a
// child logger whose fields are included in every subsequent record.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// The optimizers emit one debug record per iteration.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Convergence warnings are reported at this level.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Callers use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                {}
func (nopLogger) Info(string, ...any)                 {}
func (nopLogger) Warn(string, ...any)                 {}
func (nopLogger) Error(string, ...any)                {}
func (n nopLogger) With(...any) Logger                { return n }
func (nopLogger) Enabled(context.Context, Level) bool { return false }
