package debounce

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/debounce/ext"
	"github.com/xraph/debounce/id"
)

// entry is a single pending (key, value) pair with its expiration deadline.
// Entries are linked oldest-to-newest; because every entry shares the
// queue's fixed delay, insertion order is deadline order.
type entry[K comparable, V any] struct {
	key      K
	deadline time.Time
	value    V

	prev, next *entry[K, V]
}

// Queue is a debounced delay queue: it associates a key with a value and
// a deadline delay ahead of now, and re-upserting a key resets its
// deadline. A single consumer blocks in WaitUntilExpired until the
// oldest entry matures, then receives it.
//
// All entries share one fixed delay, configured at construction. This
// keeps the pending list sorted by deadline without a heap: new entries
// always expire last.
//
// Queue is safe for concurrent producers. WaitUntilExpired is designed
// for exactly one consumer goroutine; concurrent callers race on which
// one pops the head.
type Queue[K comparable, V any] struct {
	delay   time.Duration
	queueID id.QueueID
	logger  *slog.Logger
	hooks   *ext.Registry[K, V]

	mu   sync.Mutex
	cond *sync.Cond

	// Two indexes over the same entries, both guarded by mu: the linked
	// list orders entries oldest (head) to newest (tail), the map gives
	// O(1) key lookup for debounce and removal.
	entries map[K]*entry[K, V]
	head    *entry[K, V]
	tail    *entry[K, V]

	canceled bool
}

// New creates a Queue whose entries all expire delay after their most
// recent upsert.
func New[K comparable, V any](delay time.Duration, opts ...Option[K, V]) *Queue[K, V] {
	q := &Queue[K, V]{
		delay:   delay,
		queueID: id.NewQueueID(),
		logger:  slog.Default(),
		entries: make(map[K]*entry[K, V]),
	}
	q.cond = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ID returns the queue's unique identifier.
func (q *Queue[K, V]) ID() id.QueueID { return q.queueID }

// Delay returns the fixed per-entry delay.
func (q *Queue[K, V]) Delay() time.Duration { return q.delay }

// Len returns the number of pending entries.
func (q *Queue[K, V]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Upsert inserts value under key with deadline now+delay. If key is
// already pending its old entry is discarded and the key moves to the
// newest position with a fresh deadline (debounce). The consumer is
// woken only when the queue transitions from empty to non-empty; any
// other mutation leaves an already-scheduled wake correct, since the
// consumer re-reads the head after every sleep.
func (q *Queue[K, V]) Upsert(key K, value V) {
	q.mu.Lock()
	wasEmpty := q.head == nil

	debounced := false
	if old, ok := q.entries[key]; ok {
		q.unlink(old)
		debounced = true
	}

	e := &entry[K, V]{key: key, deadline: time.Now().Add(q.delay), value: value}
	q.push(e)
	deadline := e.deadline

	if wasEmpty {
		q.cond.Signal()
	}
	q.mu.Unlock()

	if q.hooks != nil {
		if debounced {
			q.hooks.EmitEntryDebounced(context.Background(), key, value, deadline)
		} else {
			q.hooks.EmitEntryUpserted(context.Background(), key, value, deadline)
		}
	}
}

// Remove erases key's pending entry, if any. The handler will never be
// invoked for an entry removed before its deadline. No wake is needed:
// removal can only delay or eliminate an expiration, and the consumer
// re-validates the head after waking.
func (q *Queue[K, V]) Remove(key K) {
	q.mu.Lock()
	e, ok := q.entries[key]
	if ok {
		q.unlink(e)
	}
	q.mu.Unlock()

	if ok && q.hooks != nil {
		q.hooks.EmitEntryRemoved(context.Background(), key)
	}
}

// Cancel raises the one-shot cancellation signal and wakes a consumer
// blocked on an empty queue. It is idempotent. Cancellation does not
// interrupt a consumer already waiting out a pending entry's deadline:
// it means "no more work is coming", not "abort immediately". Callers
// should stop upserting before canceling.
func (q *Queue[K, V]) Cancel() {
	q.mu.Lock()
	if q.canceled {
		q.mu.Unlock()
		return
	}
	q.canceled = true
	q.cond.Broadcast()
	q.mu.Unlock()

	q.logger.Debug("queue canceled", slog.String("queue_id", q.queueID.String()))

	if q.hooks != nil {
		q.hooks.EmitCanceled(context.Background())
	}
}

// WaitUntilExpired blocks until the oldest entry's deadline has passed,
// pops it, invokes onExpired with its key and value, and returns true.
// If the queue is empty and canceled, it returns false without invoking
// onExpired.
//
// The handler runs with no locks held, so it may freely call back into
// the queue. Intended to be called in a loop by one dedicated consumer
// goroutine:
//
//	for q.WaitUntilExpired(handle) {
//	}
//
// While waiting out a deadline the lock is released, so producers are
// never blocked for the remaining delay. After every sleep the head is
// re-read: the awaited entry may have been removed or debounced in the
// meantime, in which case the wait restarts against the current oldest
// entry (or falls back to the empty-queue wait).
func (q *Queue[K, V]) WaitUntilExpired(onExpired func(key K, value V)) bool {
	q.mu.Lock()
	for {
		for q.head == nil {
			if q.canceled {
				q.mu.Unlock()
				return false
			}
			q.cond.Wait()
		}

		oldest := q.head
		now := time.Now()
		if now.After(oldest.deadline) {
			// Copy out under the lock; the entry is unlinked before the
			// lock is released so no producer can observe it again.
			key, value := oldest.key, oldest.value
			q.unlink(oldest)
			q.mu.Unlock()

			onExpired(key, value)

			if q.hooks != nil {
				q.hooks.EmitEntryExpired(context.Background(), key, value)
			}
			return true
		}

		remaining := oldest.deadline.Sub(now)
		q.mu.Unlock()
		time.Sleep(remaining)
		q.mu.Lock()
	}
}

// unlink removes e from both indexes. Caller must hold q.mu.
func (q *Queue[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		q.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		q.tail = e.prev
	}
	e.prev, e.next = nil, nil
	delete(q.entries, e.key)
}

// push appends e at the newest end. Caller must hold q.mu.
func (q *Queue[K, V]) push(e *entry[K, V]) {
	e.prev = q.tail
	if q.tail != nil {
		q.tail.next = e
	} else {
		q.head = e
	}
	q.tail = e
	q.entries[e.key] = e
}
