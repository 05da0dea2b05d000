// Package observability provides a metrics extension for debounce queues.
// The MetricsExtension implements the entry lifecycle hooks to record
// system-wide counters for upsert, debounce, removal, expiration, and
// cancellation events.
//
// For per-delivery tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
