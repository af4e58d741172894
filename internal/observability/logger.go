package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog for structured logging
type Logger struct {
	logger *slog.Logger
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// NewLogger creates a new structured logger
func NewLogger(config LogConfig) *Logger {
	level := slog.LevelInfo
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{
		logger: slog.New(handler),
	}
}

// WithContext adds request-scoped fields to the logger
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var args []any

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}

	if layout := LayoutFromContext(ctx); layout != "" {
		args = append(args, "layout", layout)
	}

	if len(args) == 0 {
		return l
	}

	return &Logger{
		logger: l.logger.With(args...),
	}
}

// With adds additional fields to the logger
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		logger: l.logger.With(args...),
	}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs at info level
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs at error level
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	layoutKey    contextKey = "layout"
)

// ContextWithRequestID adds a request ID to context
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// ContextWithLayout records the layout file being rendered
func ContextWithLayout(ctx context.Context, layout string) context.Context {
	return context.WithValue(ctx, layoutKey, layout)
}

// LayoutFromContext extracts the layout file from context
func LayoutFromContext(ctx context.Context) string {
	if layout, ok := ctx.Value(layoutKey).(string); ok {
		return layout
	}
	return ""
}
