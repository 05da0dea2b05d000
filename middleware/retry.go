package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/debounce/backoff"
)

// Retry re-runs a failed handler up to maxAttempts times, sleeping
// between attempts according to the backoff strategy. A nil strategy
// falls back to backoff.DefaultStrategy(). The last error is returned
// if every attempt fails; the wait between attempts is abandoned when
// the delivery context is canceled.
//
// Each delivery is retried in place: the entry has already left the
// queue, so retries never interfere with debouncing of the same key.
func Retry[K comparable, V any](maxAttempts int, strategy backoff.Strategy, logger *slog.Logger) Middleware[K, V] {
	if strategy == nil {
		strategy = backoff.DefaultStrategy()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, d *Delivery[K, V], next Handler) error {
		var err error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err = next(ctx); err == nil {
				return nil
			}
			if attempt == maxAttempts {
				break
			}

			delay := strategy.Delay(attempt)
			logger.Debug("delivery failed, retrying",
				slog.Any("key", d.Key),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", delay),
				slog.String("error", err.Error()),
			)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		return err
	}
}
