package debounce

import (
	"log/slog"

	"github.com/xraph/debounce/ext"
	"github.com/xraph/debounce/id"
)

// Option configures a Queue.
type Option[K comparable, V any] func(*Queue[K, V])

// WithLogger sets the structured logger for the queue.
func WithLogger[K comparable, V any](l *slog.Logger) Option[K, V] {
	return func(q *Queue[K, V]) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithExtensions sets the extension registry. The queue emits entry
// lifecycle events to it, always outside the queue lock.
func WithExtensions[K comparable, V any](r *ext.Registry[K, V]) Option[K, V] {
	return func(q *Queue[K, V]) { q.hooks = r }
}

// WithQueueID overrides the generated queue identifier. Useful when the
// ID must be stable across process restarts for log correlation.
func WithQueueID[K comparable, V any](qid id.QueueID) Option[K, V] {
	return func(q *Queue[K, V]) {
		if !qid.IsNil() {
			q.queueID = qid
		}
	}
}
