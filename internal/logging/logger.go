package logging

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"chameleon/internal/observability"
)

// Logger defines a minimal, printf-style logging contract.
//
// Skin components depend on this interface so they can be constructed without
// an observability stack, e.g. in tests.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// IsNil reports whether logger is nil or wraps a nil pointer receiver.
func IsNil(logger Logger) bool {
	if logger == nil {
		return true
	}
	val := reflect.ValueOf(logger)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return val.IsNil()
	default:
		return false
	}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if IsNil(logger) {
		return Nop()
	}
	return logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = observability.NewLogger(observability.LogConfig{Level: "info", Format: "text"})
)

// SetDefault replaces the logger backing NewComponentLogger.
func SetDefault(logger *observability.Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	defaultMu.RLock()
	base := defaultLogger
	defaultMu.RUnlock()
	return FromObservabilityWithComponent(base, component)
}

type observabilityPrintfLogger struct {
	logger *observability.Logger
}

// FromObservabilityWithComponent wraps an observability logger and preserves
// printf-style call sites by formatting the message before emitting it.
func FromObservabilityWithComponent(logger *observability.Logger, component string) Logger {
	if logger == nil {
		return Nop()
	}
	scoped := logger
	if component != "" {
		scoped = scoped.With("component", component)
	}
	return &observabilityPrintfLogger{logger: scoped}
}

// ContextLogger is implemented by loggers that can attach request-scoped
// fields from a context.
type ContextLogger interface {
	Logger
	WithContext(ctx context.Context) Logger
}

// WithContext returns logger with the request ID and layout carried by ctx
// attached as structured fields. Loggers that cannot carry fields are
// returned unchanged.
func WithContext(ctx context.Context, logger Logger) Logger {
	logger = OrNop(logger)
	if ctx == nil {
		return logger
	}
	if cl, ok := logger.(ContextLogger); ok {
		return cl.WithContext(ctx)
	}
	return logger
}

// WithContext implements ContextLogger.
func (l *observabilityPrintfLogger) WithContext(ctx context.Context) Logger {
	return &observabilityPrintfLogger{logger: l.logger.WithContext(ctx)}
}

func (l *observabilityPrintfLogger) Debug(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *observabilityPrintfLogger) Info(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *observabilityPrintfLogger) Warn(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *observabilityPrintfLogger) Error(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
