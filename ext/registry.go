package ext

import (
	"context"
	"log/slog"
	"time"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type entryUpsertedEntry[K comparable, V any] struct {
	name string
	hook EntryUpserted[K, V]
}

type entryDebouncedEntry[K comparable, V any] struct {
	name string
	hook EntryDebounced[K, V]
}

type entryRemovedEntry[K comparable] struct {
	name string
	hook EntryRemoved[K]
}

type entryExpiredEntry[K comparable, V any] struct {
	name string
	hook EntryExpired[K, V]
}

type canceledEntry struct {
	name string
	hook Canceled
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry[K comparable, V any] struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	entryUpserted  []entryUpsertedEntry[K, V]
	entryDebounced []entryDebouncedEntry[K, V]
	entryRemoved   []entryRemovedEntry[K]
	entryExpired   []entryExpiredEntry[K, V]
	canceled       []canceledEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry[K comparable, V any](logger *slog.Logger) *Registry[K, V] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry[K, V]{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry[K, V]) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(EntryUpserted[K, V]); ok {
		r.entryUpserted = append(r.entryUpserted, entryUpsertedEntry[K, V]{name, h})
	}
	if h, ok := e.(EntryDebounced[K, V]); ok {
		r.entryDebounced = append(r.entryDebounced, entryDebouncedEntry[K, V]{name, h})
	}
	if h, ok := e.(EntryRemoved[K]); ok {
		r.entryRemoved = append(r.entryRemoved, entryRemovedEntry[K]{name, h})
	}
	if h, ok := e.(EntryExpired[K, V]); ok {
		r.entryExpired = append(r.entryExpired, entryExpiredEntry[K, V]{name, h})
	}
	if h, ok := e.(Canceled); ok {
		r.canceled = append(r.canceled, canceledEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry[K, V]) Extensions() []Extension { return r.extensions }

// ──────────────────────────────────────────────────
// Event emitters
// ──────────────────────────────────────────────────

// EmitEntryUpserted notifies all extensions that implement EntryUpserted.
func (r *Registry[K, V]) EmitEntryUpserted(ctx context.Context, key K, value V, deadline time.Time) {
	for _, e := range r.entryUpserted {
		if err := e.hook.OnEntryUpserted(ctx, key, value, deadline); err != nil {
			r.logHookError("OnEntryUpserted", e.name, err)
		}
	}
}

// EmitEntryDebounced notifies all extensions that implement EntryDebounced.
func (r *Registry[K, V]) EmitEntryDebounced(ctx context.Context, key K, value V, deadline time.Time) {
	for _, e := range r.entryDebounced {
		if err := e.hook.OnEntryDebounced(ctx, key, value, deadline); err != nil {
			r.logHookError("OnEntryDebounced", e.name, err)
		}
	}
}

// EmitEntryRemoved notifies all extensions that implement EntryRemoved.
func (r *Registry[K, V]) EmitEntryRemoved(ctx context.Context, key K) {
	for _, e := range r.entryRemoved {
		if err := e.hook.OnEntryRemoved(ctx, key); err != nil {
			r.logHookError("OnEntryRemoved", e.name, err)
		}
	}
}

// EmitEntryExpired notifies all extensions that implement EntryExpired.
func (r *Registry[K, V]) EmitEntryExpired(ctx context.Context, key K, value V) {
	for _, e := range r.entryExpired {
		if err := e.hook.OnEntryExpired(ctx, key, value); err != nil {
			r.logHookError("OnEntryExpired", e.name, err)
		}
	}
}

// EmitCanceled notifies all extensions that implement Canceled.
func (r *Registry[K, V]) EmitCanceled(ctx context.Context) {
	for _, e := range r.canceled {
		if err := e.hook.OnCanceled(ctx); err != nil {
			r.logHookError("OnCanceled", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the queue.
func (r *Registry[K, V]) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
