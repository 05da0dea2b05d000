package middleware

import (
	"context"

	"github.com/xraph/debounce/id"
)

// Delivery describes one expired entry being handed to the handler.
type Delivery[K comparable, V any] struct {
	// Key and Value are the expired entry's contents.
	Key   K
	Value V

	// Queue identifies the queue the entry expired from.
	Queue id.QueueID

	// Runner identifies the consumer delivering the entry, if any.
	Runner id.RunnerID
}

// Handler is the terminal function that executes delivery logic.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the delivery in flight, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware[K comparable, V any] func(ctx context.Context, d *Delivery[K, V], next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, timeout) executes as:
//
//	logging → recover → timeout → handler
func Chain[K comparable, V any](mws ...Middleware[K, V]) Middleware[K, V] {
	return func(ctx context.Context, d *Delivery[K, V], next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, d, prev)
			}
		}
		return h(ctx)
	}
}
