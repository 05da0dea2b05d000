// Package worker provides a managed consumer loop for a debounce queue.
//
// A Runner owns the single dedicated goroutine that drains expirations
// from a [debounce.Queue], wrapping each delivery in a middleware chain
// and an optional token-bucket rate limit.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/xraph/debounce"
	"github.com/xraph/debounce/id"
	"github.com/xraph/debounce/middleware"
)

// ErrNilHandler is returned by Start when the runner has no handler.
var ErrNilHandler = errors.New("worker: nil handler")

// Handler processes one expired entry. Errors are logged and recorded
// by middleware; they never stop the runner.
type Handler[K comparable, V any] func(ctx context.Context, key K, value V) error

// Runner drains a queue on a single dedicated consumer goroutine.
// The queue's wait operation supports exactly one consumer, so the
// runner never spawns more than one loop.
type Runner[K comparable, V any] struct {
	queue    *debounce.Queue[K, V]
	handler  Handler[K, V]
	chain    middleware.Middleware[K, V]
	limiter  *rate.Limiter
	logger   *slog.Logger
	runnerID id.RunnerID

	stopCtx  context.Context
	stopFunc context.CancelFunc

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// RunnerOption configures a Runner.
type RunnerOption[K comparable, V any] func(*Runner[K, V])

// WithMiddleware sets the middleware chain applied around each delivery.
// Middleware are applied right-to-left: the first is the outermost.
func WithMiddleware[K comparable, V any](mws ...middleware.Middleware[K, V]) RunnerOption[K, V] {
	return func(r *Runner[K, V]) { r.chain = middleware.Chain(mws...) }
}

// WithRateLimit caps sustained deliveries per second with a token-bucket
// limiter. Burst defaults to 1 if not positive. Zero perSecond disables
// limiting. Rate-limited deliveries are delayed, never dropped.
func WithRateLimit[K comparable, V any](perSecond float64, burst int) RunnerOption[K, V] {
	return func(r *Runner[K, V]) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRunnerID overrides the generated runner identifier.
func WithRunnerID[K comparable, V any](rid id.RunnerID) RunnerOption[K, V] {
	return func(r *Runner[K, V]) {
		if !rid.IsNil() {
			r.runnerID = rid
		}
	}
}

// NewRunner creates a runner for the given queue and handler.
func NewRunner[K comparable, V any](
	queue *debounce.Queue[K, V],
	handler Handler[K, V],
	logger *slog.Logger,
	opts ...RunnerOption[K, V],
) *Runner[K, V] {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner[K, V]{
		queue:    queue,
		handler:  handler,
		chain:    middleware.Chain[K, V](),
		logger:   logger,
		runnerID: id.NewRunnerID(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunnerID returns the runner's unique identifier.
func (r *Runner[K, V]) RunnerID() id.RunnerID { return r.runnerID }

// Start launches the consumer goroutine. It returns immediately.
// Starting an already-running runner is a no-op.
func (r *Runner[K, V]) Start(_ context.Context) error {
	if r.handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}
	r.running = true
	r.stopCtx, r.stopFunc = context.WithCancel(context.Background())

	r.logger.Info("runner starting",
		slog.String("runner_id", r.runnerID.String()),
		slog.String("queue_id", r.queue.ID().String()),
		slog.Duration("delay", r.queue.Delay()),
	)

	r.wg.Add(1)
	go r.consumeLoop()

	return nil
}

// Stop cancels the queue and waits for the consumer to drain. Pending
// entries that have already been observed by the consumer are still
// delivered once they mature; cancellation only takes effect when the
// queue is empty. If the context expires first, in-flight rate-limit
// waits are abandoned and ctx.Err() is returned while the consumer
// finishes in the background.
func (r *Runner[K, V]) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.mu.Unlock()

	r.logger.Info("runner stopping", slog.String("runner_id", r.runnerID.String()))

	r.queue.Cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("runner stopped gracefully")
	case <-ctx.Done():
		r.logger.Warn("runner shutdown timed out, consumer will exit after the current entry")
		r.stopFunc()
		return ctx.Err()
	}

	r.stopFunc()
	return nil
}

// consumeLoop runs until the queue is canceled and drained.
func (r *Runner[K, V]) consumeLoop() {
	defer r.wg.Done()

	for r.queue.WaitUntilExpired(r.deliver) {
	}
}

func (r *Runner[K, V]) deliver(key K, value V) {
	ctx := r.stopCtx

	if r.limiter != nil {
		// The entry is already popped; if the wait is aborted by
		// shutdown, deliver anyway rather than lose it.
		if err := r.limiter.Wait(ctx); err != nil {
			r.logger.Debug("rate limit wait aborted", slog.String("error", err.Error()))
		}
	}

	d := &middleware.Delivery[K, V]{
		Key:    key,
		Value:  value,
		Queue:  r.queue.ID(),
		Runner: r.runnerID,
	}

	err := r.chain(ctx, d, func(ctx context.Context) error {
		return r.handler(ctx, key, value)
	})
	if err != nil {
		r.logger.Debug("delivery failed",
			slog.Any("key", key),
			slog.String("runner_id", r.runnerID.String()),
			slog.String("error", err.Error()),
		)
	}
}
