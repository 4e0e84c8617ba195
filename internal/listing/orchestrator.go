package listing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/silver-talent/pkg/logging"
)

const (
	// DefaultDebounce sits in the middle of the accepted 600-800ms window
	DefaultDebounce = 700 * time.Millisecond
	MinDebounce     = 600 * time.Millisecond
	MaxDebounce     = 800 * time.Millisecond

	// DefaultTimeout bounds a single list request
	DefaultTimeout = 15 * time.Second
)

// ClampDebounce keeps a configured quiet period inside the accepted window
func ClampDebounce(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultDebounce
	case d < MinDebounce:
		return MinDebounce
	case d > MaxDebounce:
		return MaxDebounce
	default:
		return d
	}
}

// FetchFunc loads the items matching a query snapshot
type FetchFunc[T any] func(ctx context.Context, q ListQuery) ([]T, error)

// Option configures an Orchestrator
type Option func(*config)

type config struct {
	debounce time.Duration
	timeout  time.Duration
	after    AfterFunc
	logger   *logging.Logger
	fallback string
	name     string
	ctx      context.Context
}

// WithDebounce sets the quiet period, clamped to 600-800ms
func WithDebounce(d time.Duration) Option {
	return func(c *config) {
		c.debounce = ClampDebounce(d)
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAfterFunc swaps the timer factory, used by tests
func WithAfterFunc(after AfterFunc) Option {
	return func(c *config) {
		c.after = after
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithFallbackMessage sets the message used for errors outside the taxonomy
func WithFallbackMessage(msg string) Option {
	return func(c *config) {
		c.fallback = msg
	}
}

// WithName labels log lines of this orchestrator
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithContext sets the parent of every request context
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// Orchestrator turns query changes into requests and owns the FetchState.
// Only the most recently issued request may commit a result.
type Orchestrator[T any] struct {
	fetch     FetchFunc[T]
	debouncer *Debouncer
	timeout   time.Duration
	fallback  string
	logger    *logging.Logger
	baseCtx   context.Context

	mu        sync.Mutex
	seq       uint64
	version   uint64
	cancel    context.CancelFunc
	last      ListQuery
	state     FetchState[T]
	listeners []func(FetchState[T])
	closed    bool

	notifyMu sync.Mutex
	inflight sync.WaitGroup
}

// NewOrchestrator builds an Orchestrator around fetch
func NewOrchestrator[T any](fetch FetchFunc[T], opts ...Option) (*Orchestrator[T], error) {
	if fetch == nil {
		return nil, fmt.Errorf("listing: fetch func is required")
	}

	cfg := &config{
		debounce: DefaultDebounce,
		timeout:  DefaultTimeout,
		name:     "list",
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return &Orchestrator[T]{
		fetch:     fetch,
		debouncer: NewDebouncer(cfg.debounce, cfg.after),
		timeout:   cfg.timeout,
		fallback:  cfg.fallback,
		logger:    logging.OrNop(cfg.logger).Component(cfg.name),
		baseCtx:   cfg.ctx,
		last:      ListQuery{Filters: map[string]string{}},
		state:     idleState[T](),
	}, nil
}

// Subscribe registers fn to receive every committed state
func (o *Orchestrator[T]) Subscribe(fn func(FetchState[T])) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// State returns the current FetchState
func (o *Orchestrator[T]) State() FetchState[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastQuery returns the query of the most recently issued request
func (o *Orchestrator[T]) LastQuery() ListQuery {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last.Clone()
}

// OnQueryChange schedules a request for q after the quiet period.
// Each call restarts the period, so a burst of edits yields one request.
func (o *Orchestrator[T]) OnQueryChange(q ListQuery) {
	snapshot := q.Clone()
	o.debouncer.Trigger(func() {
		o.issue(snapshot)
	})
}

// Search issues a request for q immediately, dropping any pending debounce
func (o *Orchestrator[T]) Search(q ListQuery) {
	o.debouncer.Stop()
	o.issue(q.Clone())
}

// Retry re-issues the last query unchanged
func (o *Orchestrator[T]) Retry() {
	o.debouncer.Stop()
	o.issue(o.LastQuery())
}

// Wait blocks until every started request has returned
func (o *Orchestrator[T]) Wait() {
	o.inflight.Wait()
}

// Close drops pending work and aborts the in-flight request
func (o *Orchestrator[T]) Close() {
	o.debouncer.Stop()

	o.mu.Lock()
	o.closed = true
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.mu.Unlock()

	o.inflight.Wait()
}

func (o *Orchestrator[T]) issue(q ListQuery) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}

	if o.cancel != nil {
		// best-effort abort of the superseded request
		o.cancel()
	}

	o.seq++
	seq := o.seq
	ctx, cancel := context.WithTimeout(o.baseCtx, o.timeout)
	o.cancel = cancel
	o.last = q

	state := loadingState[T](seq, q)
	version := o.commitLocked(state)
	o.inflight.Add(1)
	o.mu.Unlock()

	requestID := uuid.NewString()
	o.logger.Debug("list request issued", "seq", seq, "request_id", requestID)

	o.notify(version, state)

	go o.run(ctx, cancel, seq, requestID, q)
}

func (o *Orchestrator[T]) run(ctx context.Context, cancel context.CancelFunc, seq uint64, requestID string, q ListQuery) {
	defer o.inflight.Done()
	defer cancel()

	started := time.Now()
	items, err := o.fetch(ctx, q)

	o.mu.Lock()
	if seq != o.seq || o.closed {
		o.mu.Unlock()
		o.logger.Debug("stale list response discarded",
			"seq", seq,
			"request_id", requestID,
			"canceled", IsCanceled(err),
		)
		return
	}

	var state FetchState[T]
	if err != nil {
		state = errorState[T](seq, q, MessageOf(err, o.fallback))
	} else {
		state = successState(seq, q, items)
	}
	o.cancel = nil
	version := o.commitLocked(state)
	o.mu.Unlock()

	if err != nil {
		o.logger.Warn("list request failed",
			"seq", seq,
			"request_id", requestID,
			"err", err,
			"elapsed", time.Since(started),
		)
	} else {
		o.logger.Debug("list request committed",
			"seq", seq,
			"request_id", requestID,
			"items", len(items),
			"elapsed", time.Since(started),
		)
	}

	o.notify(version, state)
}

// commitLocked must be called with mu held
func (o *Orchestrator[T]) commitLocked(state FetchState[T]) uint64 {
	o.state = state
	o.version++
	return o.version
}

// notify delivers state unless a newer state was committed meanwhile, so
// listeners never observe states out of order
func (o *Orchestrator[T]) notify(version uint64, state FetchState[T]) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	current := o.version
	listeners := append([]func(FetchState[T]){}, o.listeners...)
	o.mu.Unlock()

	if version != current {
		return
	}
	for _, fn := range listeners {
		fn(state)
	}
}
