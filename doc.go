// Package debounce provides a debounced delay queue: a concurrent
// container that associates a key with a value and a future expiration
// deadline, where re-upserting an existing key resets its deadline.
// A single consumer blocks until the earliest deadline passes, then
// receives the matured entry.
//
// It is a building block for "close/evict this resource after N seconds
// of inactivity, unless touched again" patterns — releasing idle file
// handles, closing dormant connections, flushing settled caches.
//
// # Quick Start
//
//	q := debounce.New[string, *os.File](30 * time.Second)
//
//	go func() {
//	    for q.WaitUntilExpired(func(path string, f *os.File) {
//	        f.Close()
//	    }) {
//	    }
//	}()
//
//	q.Upsert("/var/data/a.log", fa) // schedule close in 30s
//	q.Upsert("/var/data/a.log", fa) // touched again: deadline resets
//	q.Remove("/var/data/a.log")     // or keep it open after all
//	q.Cancel()                      // shutdown: unblock the consumer
//
// # Architecture
//
// Every entry shares the queue's fixed delay, so insertion order equals
// deadline order and no heap is needed. The consumer sleeps outside the
// queue lock and re-reads the oldest entry after every wake, tolerating
// concurrent upserts and removals during the sleep window.
//
// The worker package wraps the consumer loop in a managed Runner with
// middleware (recovery, logging, tracing, metrics) and rate limiting.
// The ext package notifies extensions of entry lifecycle events; the
// observability package ships a metrics extension.
package debounce
