// Package log provides a structured logging interface for concept-lattice
// construction and decision-lattice prediction.
//
// The Logger interface is slog-compatible so the backend can be switched
// freely. The default backend is zerolog (see NewZerologLogger); SetupLogger
// installs a log/slog JSON backend instead.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "DecisionLatticeClassifier",
//	)
//	logger.Info("Fit completed",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 150,
//	    log.ConceptsKey, 312,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. With returns a child logger whose
// fields are included in every subsequent record.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message. If the first field is an error it
	// is attached as the record's error value.
	//
	// Example:
	//   logger.Error("Lattice construction failed",
	//       err,
	//       log.AlgorithmKey, "CbO",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
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

// LoggerProvider creates and configures loggers; used for dependency
// injection in tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
