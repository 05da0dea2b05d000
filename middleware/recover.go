package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to errors and logged with a stack trace.
func Recover[K comparable, V any](logger *slog.Logger) Middleware[K, V] {
	return func(ctx context.Context, d *Delivery[K, V], next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("expiration handler panicked",
					slog.Any("key", d.Key),
					slog.String("queue_id", d.Queue.String()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic delivering %v: %v", d.Key, r)
			}
		}()
		return next(ctx)
	}
}
