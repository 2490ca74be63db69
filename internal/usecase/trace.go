package usecase

import (
	"context"
	"errors"

	"github.com/riskibarqy/statsfeed/internal/domain/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const sportAttribute = "statsfeed.sport"

var usecaseTracer = otel.Tracer("statsfeed/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan opens a child span tagged with the requested sport, if any. Calls without a
// parent span, such as the fetch command, get a no-op span.
func startUsecaseSpan(ctx context.Context, name, sport string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	if sport != "" {
		attrs = append(attrs, attribute.String(sportAttribute, sport))
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// recordSpanError attaches err to span. A match that has not started and rejected input
// are answers to the caller, so they leave the span status unset.
func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	if errors.Is(err, event.ErrInvalidStatus) || errors.Is(err, ErrInvalidInput) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
