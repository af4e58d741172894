package skin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"chameleon/internal/components"
	"chameleon/internal/layout"
	"chameleon/internal/logging"
	"chameleon/internal/observability"
)

// RenderOptions narrows or adjusts a single render.
type RenderOptions struct {
	// ComponentType limits rendering to components of this type.
	ComponentType string
	// Attributes override layout attributes of every rendered component.
	Attributes map[string]string
}

// Page is the result of rendering a layout.
type Page struct {
	Body       string
	Components int
	ListItems  int
	// Skipped lists component types that could not be built.
	Skipped []string
}

// Renderer assembles layouts into markup.
type Renderer struct {
	layouts *layout.Cache
	metrics *observability.MetricsCollector
	tracer  *observability.TracerProvider
	logger  logging.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithMetrics records component renders on collector.
func WithMetrics(collector *observability.MetricsCollector) RendererOption {
	return func(r *Renderer) {
		r.metrics = collector
	}
}

// WithTracer starts a span per page and per component.
func WithTracer(tracer *observability.TracerProvider) RendererOption {
	return func(r *Renderer) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithLogger sets the renderer's logger.
func WithLogger(logger logging.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logging.OrNop(logger)
	}
}

// NewRenderer creates a renderer loading layouts through cache.
func NewRenderer(cache *layout.Cache, opts ...RendererOption) *Renderer {
	r := &Renderer{
		layouts: cache,
		tracer:  observability.NoopTracerProvider(),
		logger:  logging.NewComponentLogger("Renderer"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render renders the layout at layoutPath with pc. Component types the
// factory does not know are skipped, but the components nested in them are
// still rendered.
func (r *Renderer) Render(ctx context.Context, layoutPath string, pc PageContext, opts RenderOptions) (Page, error) {
	ctx = observability.ContextWithLayout(ctx, layoutPath)
	ctx, span := r.tracer.StartSpan(ctx, observability.SpanPageRender, attribute.String(observability.AttrLayout, layoutPath))
	defer span.End()

	l, err := r.layouts.Load(layoutPath)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(observability.ErrorAttrs(err)...)
		span.SetStatus(codes.Error, err.Error())
		logging.WithContext(ctx, r.logger).Warn("load layout failed: %v", err)
		return Page{}, fmt.Errorf("load layout: %w", err)
	}

	var nodes []*layout.Node
	if opts.ComponentType != "" {
		nodes = l.Components(opts.ComponentType)
	} else {
		nodes = l.AllComponents()
	}

	var page Page
	var body strings.Builder
	r.renderNodes(ctx, layoutPath, nodes, pc, opts, &page, &body)
	page.Body = body.String()

	span.SetAttributes(attribute.Int(observability.AttrListItems, page.ListItems))
	return page, nil
}

func (r *Renderer) renderNodes(ctx context.Context, layoutPath string, nodes []*layout.Node, pc PageContext, opts RenderOptions, page *Page, body *strings.Builder) {
	for _, node := range nodes {
		markup, items, err := r.renderComponent(ctx, layoutPath, node, pc, opts)
		if errors.Is(err, components.ErrUnknownComponent) {
			logging.WithContext(ctx, r.logger).Debug("skipping component %q", node.Type())
			page.Skipped = append(page.Skipped, node.Type())
			r.renderNodes(ctx, layoutPath, node.ChildComponents(), pc, opts, page, body)
			continue
		}
		body.WriteString(markup)
		page.Components++
		page.ListItems += items
	}
}

func (r *Renderer) renderComponent(ctx context.Context, layoutPath string, node *layout.Node, pc PageContext, opts RenderOptions) (string, int, error) {
	if len(opts.Attributes) > 0 {
		// Cached layouts are shared; overrides go on a copy.
		node = node.Clone()
		for name, value := range opts.Attributes {
			node.SetAttr(name, value)
		}
	}

	template := NewTemplate(pc)
	component, err := components.New(template, node, components.WithLogger(logging.WithContext(ctx, r.logger)))
	if err != nil {
		return "", 0, err
	}

	ctx, span := r.tracer.StartSpan(ctx, observability.SpanComponentRender, observability.ComponentAttrs(node.Type(), layoutPath)...)
	defer span.End()

	start := time.Now()
	markup := component.HTML()
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int(observability.AttrListItems, template.Requests()))
	r.metrics.RecordComponentRender(ctx, node.Type(), "ok", elapsed, template.Requests())
	return markup, template.Requests(), nil
}
