package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"chameleon/internal/logging"
	"chameleon/internal/observability"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestLoggingMiddleware tags each request with an ID, wraps it in a span and
// logs its outcome.
func RequestLoggingMiddleware(logger logging.Logger, tracer *observability.TracerProvider) gin.HandlerFunc {
	logger = logging.OrNop(logger)
	if tracer == nil {
		tracer = observability.NoopTracerProvider()
	}
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		ctx := observability.ContextWithRequestID(c.Request.Context(), requestID)
		ctx, span := tracer.StartSpan(ctx, observability.SpanHTTPServer,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		logging.WithContext(ctx, logger).Info("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}
