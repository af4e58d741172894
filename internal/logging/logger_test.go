package logging

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"chameleon/internal/observability"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(format string, args ...any) { r.add("DEBUG", format, args) }
func (r *recordingLogger) Info(format string, args ...any)  { r.add("INFO", format, args) }
func (r *recordingLogger) Warn(format string, args ...any)  { r.add("WARN", format, args) }
func (r *recordingLogger) Error(format string, args ...any) { r.add("ERROR", format, args) }

func (r *recordingLogger) add(level, format string, args []any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func TestOrNopHandlesTypedNilPointers(t *testing.T) {
	var rec *recordingLogger
	var logger Logger = rec
	if !IsNil(logger) {
		t.Fatalf("expected typed nil pointer to be detected")
	}
	safe := OrNop(logger)
	if IsNil(safe) {
		t.Fatalf("expected OrNop to return a usable logger")
	}
	safe.Info("hello %s", "world") // should not panic
}

func TestFromObservabilityFormatsMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	base := observability.NewLogger(observability.LogConfig{
		Level:  "info",
		Format: "text",
		Output: buf,
	})

	logger := FromObservabilityWithComponent(base, "test")
	logger.Info("hello %s", "world")

	if got := buf.String(); got == "" {
		t.Fatalf("expected log output")
	}
	if want := "hello world"; !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Fatalf("expected %q in output, got %q", want, buf.String())
	}
	if want := "component=test"; !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Fatalf("expected %q in output, got %q", want, buf.String())
	}
}

func TestNewComponentLoggerUsesDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	SetDefault(observability.NewLogger(observability.LogConfig{Level: "debug", Format: "text", Output: buf}))
	t.Cleanup(func() {
		SetDefault(observability.NewLogger(observability.LogConfig{Level: "info", Format: "text"}))
	})

	NewComponentLogger("PersonalTools").Warn("unknown mode %q", "bubbles")

	if !bytes.Contains(buf.Bytes(), []byte("component=PersonalTools")) {
		t.Fatalf("expected component field, got %q", buf.String())
	}
}

func TestWithContextAddsRequestFields(t *testing.T) {
	buf := &bytes.Buffer{}
	base := observability.NewLogger(observability.LogConfig{Level: "info", Format: "text", Output: buf})

	ctx := observability.ContextWithRequestID(context.Background(), "req-7")
	ctx = observability.ContextWithLayout(ctx, "standard.xml")
	WithContext(ctx, FromObservabilityWithComponent(base, "HTTP")).Info("GET %s", "/")

	for _, want := range []string{"request_id=req-7", "layout=standard.xml", "component=HTTP", `msg="GET /"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("expected %q in output, got %q", want, buf.String())
		}
	}
}

func TestWithContextLeavesPlainLoggersAlone(t *testing.T) {
	rec := &recordingLogger{}
	ctx := observability.ContextWithRequestID(context.Background(), "req-7")

	logger := WithContext(ctx, rec)
	if logger != Logger(rec) {
		t.Fatalf("expected the same logger back")
	}
	if _, ok := WithContext(ctx, nil).(nopLogger); !ok {
		t.Fatalf("expected nil logger to become a nop logger")
	}
}
