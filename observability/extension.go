package observability

import (
	"context"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/debounce/ext"
)

// Compile-time interface checks.
var (
	_ ext.Extension                   = (*MetricsExtension[string, int])(nil)
	_ ext.EntryUpserted[string, int]  = (*MetricsExtension[string, int])(nil)
	_ ext.EntryDebounced[string, int] = (*MetricsExtension[string, int])(nil)
	_ ext.EntryRemoved[string]        = (*MetricsExtension[string, int])(nil)
	_ ext.EntryExpired[string, int]   = (*MetricsExtension[string, int])(nil)
	_ ext.Canceled                    = (*MetricsExtension[string, int])(nil)
)

// MetricsExtension records queue lifecycle metrics via go-utils MetricFactory.
// Register it as an extension to automatically track insertion rates,
// debounce counts, removals, expirations, and cancellations. The type
// parameters must match the queue the extension is registered with.
type MetricsExtension[K comparable, V any] struct {
	EntryUpserted  gu.Counter
	EntryDebounced gu.Counter
	EntryRemoved   gu.Counter
	EntryExpired   gu.Counter
	Canceled       gu.Counter
}

// NewMetricsExtension creates a MetricsExtension using a default metrics collector.
func NewMetricsExtension[K comparable, V any]() *MetricsExtension[K, V] {
	return NewMetricsExtensionWithFactory[K, V](gu.NewMetricsCollector("debounce/observability"))
}

// NewMetricsExtensionWithFactory creates a MetricsExtension with the provided
// MetricFactory. Use gu.NewMetricsCollector for testing.
func NewMetricsExtensionWithFactory[K comparable, V any](factory gu.MetricFactory) *MetricsExtension[K, V] {
	return &MetricsExtension[K, V]{
		EntryUpserted:  factory.Counter("debounce.entry.upserted"),
		EntryDebounced: factory.Counter("debounce.entry.debounced"),
		EntryRemoved:   factory.Counter("debounce.entry.removed"),
		EntryExpired:   factory.Counter("debounce.entry.expired"),
		Canceled:       factory.Counter("debounce.canceled"),
	}
}

// Name implements ext.Extension.
func (m *MetricsExtension[K, V]) Name() string { return "observability-metrics" }

// OnEntryUpserted implements ext.EntryUpserted.
func (m *MetricsExtension[K, V]) OnEntryUpserted(_ context.Context, _ K, _ V, _ time.Time) error {
	m.EntryUpserted.Inc()
	return nil
}

// OnEntryDebounced implements ext.EntryDebounced.
func (m *MetricsExtension[K, V]) OnEntryDebounced(_ context.Context, _ K, _ V, _ time.Time) error {
	m.EntryDebounced.Inc()
	return nil
}

// OnEntryRemoved implements ext.EntryRemoved.
func (m *MetricsExtension[K, V]) OnEntryRemoved(_ context.Context, _ K) error {
	m.EntryRemoved.Inc()
	return nil
}

// OnEntryExpired implements ext.EntryExpired.
func (m *MetricsExtension[K, V]) OnEntryExpired(_ context.Context, _ K, _ V) error {
	m.EntryExpired.Inc()
	return nil
}

// OnCanceled implements ext.Canceled.
func (m *MetricsExtension[K, V]) OnCanceled(_ context.Context) error {
	m.Canceled.Inc()
	return nil
}
