package middleware

import (
	"context"
	"time"
)

// Timeout returns middleware that enforces a per-delivery execution deadline.
// If d is non-zero, a context.WithTimeout wraps the handler call. When the
// deadline is exceeded the context is cancelled and the handler should
// return context.DeadlineExceeded.
func Timeout[K comparable, V any](timeout time.Duration) Middleware[K, V] {
	return func(ctx context.Context, _ *Delivery[K, V], next Handler) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return next(ctx)
	}
}
