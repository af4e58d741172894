package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracingConfig configures distributed tracing
type TracingConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Exporter       string  `yaml:"exporter"` // otlp, zipkin
	OTLPEndpoint   string  `yaml:"otlp_endpoint"`
	ZipkinEndpoint string  `yaml:"zipkin_endpoint"`
	SampleRate     float64 `yaml:"sample_rate"` // 0.0 to 1.0
	ServiceName    string  `yaml:"service_name"`
	ServiceVersion string  `yaml:"service_version"`
}

// TracerProvider wraps OpenTelemetry tracer
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracerProvider creates a new tracer provider
func NewTracerProvider(config TracingConfig) (*TracerProvider, error) {
	if !config.Enabled {
		return NoopTracerProvider(), nil
	}

	if config.ServiceName == "" {
		config.ServiceName = "chameleon"
	}
	if config.SampleRate <= 0 || config.SampleRate > 1.0 {
		config.SampleRate = 1.0
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch config.Exporter {
	case "otlp":
		endpoint := config.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4318"
		}
		exporter, err = otlptracehttp.New(
			context.Background(),
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
	case "zipkin":
		endpoint := config.ZipkinEndpoint
		if endpoint == "" {
			endpoint = "http://localhost:9411/api/v2/spans"
		}
		exporter, err = zipkin.New(endpoint)
	default:
		return nil, fmt.Errorf("unsupported exporter: %s", config.Exporter)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.SampleRate)),
	)
	otel.SetTracerProvider(provider)

	return &TracerProvider{
		provider: provider,
		tracer:   provider.Tracer("chameleon"),
	}, nil
}

// NoopTracerProvider returns a provider whose spans are discarded.
func NoopTracerProvider() *TracerProvider {
	return &TracerProvider{
		tracer: noop.NewTracerProvider().Tracer("chameleon"),
	}
}

// Shutdown gracefully shuts down the tracer provider
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp != nil && tp.provider != nil {
		return tp.provider.Shutdown(ctx)
	}
	return nil
}

// StartSpan starts a new span, tagging it with the request ID when present.
func (tp *TracerProvider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, attribute.String("chameleon.request_id", requestID))
	}
	return tp.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Common span names
const (
	SpanPageRender      = "chameleon.page.render"
	SpanComponentRender = "chameleon.component.render"
	SpanHTTPServer      = "chameleon.http.request"
)
