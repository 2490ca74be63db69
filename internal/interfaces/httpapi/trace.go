package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("statsfeed/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a span for handler entry points only. Middleware and response helpers
// run inside the request span and get a no-op span, as does any call without a request
// span (untraced routes such as /healthz).
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// routeAttributes tags a handler span with the sport and event from the request path.
func routeAttributes(r *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if sport := r.PathValue("sport"); sport != "" {
		attrs = append(attrs, attribute.String("statsfeed.sport", sport))
	}
	if eventID := r.PathValue("eventID"); eventID != "" {
		attrs = append(attrs, attribute.String("statsfeed.event_id", eventID))
	}
	return attrs
}

// annotateSpanError records the envelope reason on the active span. Only server-side
// failures mark the span as errored.
func annotateSpanError(ctx context.Context, mapped mappedError, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("statsfeed.error_reason", mapped.Reason),
		attribute.Int("http.response.status_code", mapped.HTTPStatus),
	)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
	}
}
