package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for debounce metrics.
const meterName = "github.com/xraph/debounce"

// Metrics returns middleware that records per-delivery metrics using
// the global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - debounce.delivery.duration (Float64Histogram): handler time in seconds,
//     with attributes: queue_id, status ("ok" or "error")
//   - debounce.deliveries (Int64Counter): total deliveries,
//     with attributes: queue_id, status ("ok" or "error")
func Metrics[K comparable, V any]() Middleware[K, V] {
	meter := otel.Meter(meterName)
	return MetricsWithMeter[K, V](meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter[K comparable, V any](meter metric.Meter) Middleware[K, V] {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"debounce.delivery.duration",
		metric.WithDescription("Duration of expiration handler execution in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	deliveries, eErr := meter.Int64Counter(
		"debounce.deliveries",
		metric.WithDescription("Total number of expiration deliveries"),
		metric.WithUnit("{delivery}"),
	)
	_ = eErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, d *Delivery[K, V], next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}
		attrs := metric.WithAttributes(
			attribute.String("queue_id", d.Queue.String()),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		deliveries.Add(ctx, 1, attrs)

		return err
	}
}
