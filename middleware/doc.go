// Package middleware provides composable middleware for expiration delivery.
//
// A [Middleware] is a function that wraps an expiration handler. Middleware
// are composed into a chain using [Chain] and applied around each delivery.
// They are applied right-to-left: the first middleware in the slice is the
// outermost wrapper.
//
//	// logging → recover → handler
//	chain := middleware.Chain(middleware.Logging[string, int](logger), middleware.Recover[string, int](logger))
//
// # Built-in Middleware
//
//   - [Logging] — logs key, queue, duration, and outcome of each delivery
//   - [Recover] — catches panics and converts them to errors
//   - [Timeout] — cancels the delivery context after a configured duration
//   - [Retry] — re-runs failed handlers with a pluggable backoff strategy
//   - [Tracing] — wraps delivery in an OpenTelemetry span
//   - [Metrics] — records per-delivery duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware[K comparable, V any]() middleware.Middleware[K, V] {
//	    return func(ctx context.Context, d *middleware.Delivery[K, V], next middleware.Handler) error {
//	        // pre-processing
//	        err := next(ctx)
//	        // post-processing
//	        return err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting (e.g., circuit breaker, rate limiting).
package middleware
