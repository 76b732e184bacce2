package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

// GetLogger returns the process-wide logger used by components that were
// not given one explicitly.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide logger. A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl    zerolog.Logger
	level Level
}

// NewZerologLogger writes JSON lines to w, dropping records below level.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl, level: level}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error. A leading error field becomes the record's
// "error" value.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	ev := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	l.emit(ev, msg, fields)
}

func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	if len(fields) > 1 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	if len(fields) < 2 {
		return l
	}
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger(), level: l.level}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= l.level
}

// Zerolog exposes the underlying zerolog logger.
func (l *ZerologLogger) Zerolog() zerolog.Logger {
	return l.zl
}

// RouteWarnings sends every errors.Warn call to logger. Warnings that
// implement zerolog.LogObjectMarshaler keep their structured fields when
// logger is a *ZerologLogger.
func RouteWarnings(logger Logger) {
	errors.SetZerologWarnFunc(func(w error) {
		if zl, ok := logger.(*ZerologLogger); ok {
			ev := zl.zl.Warn()
			if m, ok := w.(zerolog.LogObjectMarshaler); ok {
				ev = ev.EmbedObject(m)
			}
			ev.Msg(w.Error())
			return
		}
		logger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
	})
}
