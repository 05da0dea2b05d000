package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs delivery start and completion.
func Logging[K comparable, V any](logger *slog.Logger) Middleware[K, V] {
	return func(ctx context.Context, d *Delivery[K, V], next Handler) error {
		logger.Debug("delivery started",
			slog.Any("key", d.Key),
			slog.String("queue_id", d.Queue.String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("delivery failed",
				slog.Any("key", d.Key),
				slog.String("queue_id", d.Queue.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("delivery completed",
				slog.Any("key", d.Key),
				slog.String("queue_id", d.Queue.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
