// Package ext defines the extension system for debounce queues.
// Extensions are notified of entry lifecycle events (upserted, debounced,
// removed, expired, canceled) and can react to them — logging, metrics,
// tracing, etc.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package ext

import (
	"context"
	"time"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Entry lifecycle hooks
// ──────────────────────────────────────────────────

// EntryUpserted is called after a key that was not pending is inserted
// with a fresh deadline.
type EntryUpserted[K comparable, V any] interface {
	OnEntryUpserted(ctx context.Context, key K, value V, deadline time.Time) error
}

// EntryDebounced is called when an upsert replaces a live entry for the
// same key, postponing its deadline.
type EntryDebounced[K comparable, V any] interface {
	OnEntryDebounced(ctx context.Context, key K, value V, deadline time.Time) error
}

// EntryRemoved is called after an explicit Remove erases a pending entry.
// Removals of absent keys are not reported.
type EntryRemoved[K comparable] interface {
	OnEntryRemoved(ctx context.Context, key K) error
}

// EntryExpired is called after an entry's deadline has passed and it has
// been handed to the expiration handler.
type EntryExpired[K comparable, V any] interface {
	OnEntryExpired(ctx context.Context, key K, value V) error
}

// ──────────────────────────────────────────────────
// Queue lifecycle hooks
// ──────────────────────────────────────────────────

// Canceled is called once when the queue's cancellation signal is raised.
type Canceled interface {
	OnCanceled(ctx context.Context) error
}
