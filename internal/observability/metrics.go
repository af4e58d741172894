package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsCollector manages the skin's rendering metrics
type MetricsCollector struct {
	provider *sdkmetric.MeterProvider
	registry *promclient.Registry

	componentRenders metric.Int64Counter
	renderDuration   metric.Float64Histogram
	listItems        metric.Int64Counter
}

// MetricsConfig configures the metrics collector
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NewMetricsCollector creates a new metrics collector. A disabled collector
// accepts every Record call and drops it.
func NewMetricsCollector(config MetricsConfig) (*MetricsCollector, error) {
	if !config.Enabled {
		return &MetricsCollector{}, nil
	}

	// Each collector owns its registry so several can coexist in one process.
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	meter := provider.Meter("chameleon")

	componentRenders, err := meter.Int64Counter(
		"chameleon.component.renders",
		metric.WithDescription("Total number of skin components rendered"),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create component_renders counter: %w", err)
	}

	renderDuration, err := meter.Float64Histogram(
		"chameleon.component.render.duration",
		metric.WithDescription("Component render duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create render_duration histogram: %w", err)
	}

	listItems, err := meter.Int64Counter(
		"chameleon.list_items",
		metric.WithDescription("Total number of list items requested from the host template"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list_items counter: %w", err)
	}

	return &MetricsCollector{
		provider:         provider,
		registry:         registry,
		componentRenders: componentRenders,
		renderDuration:   renderDuration,
		listItems:        listItems,
	}, nil
}

// Enabled reports whether the collector records anything.
func (m *MetricsCollector) Enabled() bool {
	return m != nil && m.componentRenders != nil
}

// Handler returns the Prometheus scrape handler for this collector.
func (m *MetricsCollector) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider
func (m *MetricsCollector) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}

// RecordComponentRender records one component render
func (m *MetricsCollector) RecordComponentRender(ctx context.Context, componentType string, status string, duration time.Duration, listItems int) {
	if !m.Enabled() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(AttrComponentType, componentType),
		attribute.String(AttrStatus, status),
	}

	m.componentRenders.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.renderDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(AttrComponentType, componentType)))
	if listItems > 0 {
		m.listItems.Add(ctx, int64(listItems), metric.WithAttributes(attribute.String(AttrComponentType, componentType)))
	}
}

// Common attribute keys
const (
	AttrComponentType = "chameleon.component.type"
	AttrLayout        = "chameleon.layout"
	AttrListItems     = "chameleon.list_items"
	AttrStatus        = "chameleon.status"
	AttrError         = "chameleon.error"
)

// ComponentAttrs creates component attributes
func ComponentAttrs(componentType, layout string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrComponentType, componentType),
		attribute.String(AttrLayout, layout),
	}
}

// ErrorAttrs creates error attributes
func ErrorAttrs(err error) []attribute.KeyValue {
	if err == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Bool(AttrError, true),
		attribute.String("error.message", err.Error()),
	}
}
