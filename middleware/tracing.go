package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for debounce tracing.
const tracerName = "github.com/xraph/debounce"

// Tracing returns middleware that wraps delivery in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is used
// and this middleware becomes a pass-through with zero overhead.
//
// Span attributes include: debounce.key, debounce.queue_id,
// debounce.runner_id. On error, the span status is set to codes.Error with
// the error message.
func Tracing[K comparable, V any]() Middleware[K, V] {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer[K, V](tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer[K comparable, V any](tracer trace.Tracer) Middleware[K, V] {
	return func(ctx context.Context, d *Delivery[K, V], next Handler) error {
		ctx, span := tracer.Start(ctx, "debounce.delivery",
			trace.WithAttributes(
				attribute.String("debounce.key", fmt.Sprint(d.Key)),
				attribute.String("debounce.queue_id", d.Queue.String()),
				attribute.String("debounce.runner_id", d.Runner.String()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
