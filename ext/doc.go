// Package ext defines the extension system for debounce queues.
//
// Extensions are notified of lifecycle events and can react to them —
// recording metrics, emitting webhooks, writing audit logs, etc.
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
//
// # Implementing an Extension
//
//	type MyExtension struct{}
//
//	func (e *MyExtension) Name() string { return "my-extension" }
//
//	// Opt in to specific hooks by implementing their interfaces.
//	func (e *MyExtension) OnEntryExpired(ctx context.Context, key string, value int) error {
//	    log.Printf("entry %s expired with value %d", key, value)
//	    return nil
//	}
//
// # Entry Lifecycle Hooks
//
//   - [EntryUpserted] — a key not previously pending was inserted
//   - [EntryDebounced] — an upsert replaced a live entry, resetting its deadline
//   - [EntryRemoved] — a pending entry was explicitly removed
//   - [EntryExpired] — an entry matured and was delivered to the handler
//
// # Queue Lifecycle Hooks
//
//   - [Canceled] — the queue's cancellation signal was raised
//
// The [Registry] fans out each event to all registered extensions that
// implement the corresponding hook interface.
package ext
