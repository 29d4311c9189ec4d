// Package fetcher requests missing objects from peers and waits for them to be stored.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrTimeout means no peer delivered the object in time.
	ErrTimeout = errors.New("object fetch timed out")
	// ErrRejected means the object was delivered but failed validation.
	ErrRejected = errors.New("fetched object rejected")
)

// DefaultTimeout bounds the wait for a requested object to reach the node.
const DefaultTimeout = time.Second

type request struct {
	done chan struct{}
	// delivered is closed when a validation of the object starts, abandoned when every such validation
	// ended without a verdict. Each is replaced when the other closes.
	delivered  chan struct{}
	abandoned  chan struct{}
	validating int
	failed     bool
	waiters    int
	dependents int
}

// Fetcher keeps one pending entry per awaited id, shared by every waiter of that id.
type Fetcher struct {
	broadcaster Broadcaster
	checker     Checker
	metrics     Metrics
	timeout     time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	pending map[string]*request
}

// New constructs a Fetcher. A non-positive timeout selects DefaultTimeout.
func New(broadcaster Broadcaster, checker Checker, metrics Metrics, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		broadcaster: broadcaster,
		checker:     checker,
		metrics:     metrics,
		timeout:     timeout,
		logger:      logger.Named("fetcher"),
		pending:     make(map[string]*request),
	}
}

// Fetch broadcasts a request for id and blocks until the object is stored.
// The timeout covers delivery only: once a peer has sent the object, Fetch waits for its validation to finish.
// It returns ErrTimeout, ErrRejected or the context error when the object does not become available.
func (f *Fetcher) Fetch(ctx context.Context, id string) error {
	return f.fetch(ctx, id, false)
}

// FetchDependency is Fetch for an object another validation needs. Dependency reports such ids.
func (f *Fetcher) FetchDependency(ctx context.Context, id string) error {
	return f.fetch(ctx, id, true)
}

func (f *Fetcher) fetch(ctx context.Context, id string, dependency bool) (err error) {
	started := time.Now()
	r := f.register(id, dependency)
	defer f.release(id, r, dependency)
	defer func() {
		f.metrics.ObserveFetch(fetchStatus(err), started)
	}()

	f.logger.Debug("requesting object", zap.String("id", id), zap.Bool("dependency", dependency))
	f.broadcaster.RequestObject(id)

	// The object may have been stored between the caller's check and register.
	ok, err := f.checker.Has(id)
	if err != nil {
		return fmt.Errorf("check object %s: %w", id, err)
	}
	if ok {
		return nil
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	for {
		f.mu.Lock()
		validating := r.validating > 0
		delivered, abandoned := r.delivered, r.abandoned
		f.mu.Unlock()

		if validating {
			select {
			case <-r.done:
				return f.outcome(id, r)
			case <-abandoned:
				f.logger.Debug("delivery abandoned, waiting for another", zap.String("id", id))
				timer.Reset(f.timeout)
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		select {
		case <-r.done:
			return f.outcome(id, r)
		case <-delivered:
		case <-timer.C:
			f.logger.Debug("object fetch timed out", zap.String("id", id))
			return fmt.Errorf("%w: %s", ErrTimeout, id)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *Fetcher) outcome(id string, r *request) error {
	f.mu.Lock()
	failed := r.failed
	f.mu.Unlock()
	if failed {
		return fmt.Errorf("%w: %s", ErrRejected, id)
	}
	return nil
}

func (f *Fetcher) register(id string, dependency bool) *request {
	f.mu.Lock()
	r, ok := f.pending[id]
	if !ok {
		r = &request{
			done:      make(chan struct{}),
			delivered: make(chan struct{}),
			abandoned: make(chan struct{}),
		}
		f.pending[id] = r
	}
	r.waiters++
	if dependency {
		r.dependents++
	}
	n := len(f.pending)
	f.mu.Unlock()

	f.metrics.SetPending(n)
	return r
}

func (f *Fetcher) release(id string, r *request, dependency bool) {
	f.mu.Lock()
	r.waiters--
	if dependency {
		r.dependents--
	}
	if r.waiters == 0 && f.pending[id] == r {
		delete(f.pending, id)
	}
	n := len(f.pending)
	f.mu.Unlock()

	f.metrics.SetPending(n)
}

// Received marks id as delivered by a peer and under validation.
// Every Received is settled by Notify, Fail or Abandon.
func (f *Fetcher) Received(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.pending[id]
	if !ok {
		return
	}
	r.validating++
	if r.validating == 1 {
		close(r.delivered)
		r.abandoned = make(chan struct{})
	}
}

// Abandon ends a validation of id that reached no verdict, such as one cut short by its context.
// Once no validation is left, waiters go back to waiting for a delivery under a fresh timeout.
func (f *Fetcher) Abandon(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.pending[id]
	if !ok || r.validating == 0 {
		return
	}
	r.validating--
	if r.validating == 0 {
		close(r.abandoned)
		r.delivered = make(chan struct{})
	}
}

// Notify resolves every waiter of id successfully. It is called once the object is stored.
func (f *Fetcher) Notify(id string) {
	f.resolve(id, false)
}

// Fail resolves every waiter of id with ErrRejected.
func (f *Fetcher) Fail(id string) {
	f.resolve(id, true)
}

func (f *Fetcher) resolve(id string, failed bool) {
	f.mu.Lock()
	r, ok := f.pending[id]
	if ok {
		delete(f.pending, id)
		r.failed = failed
		close(r.done)
	}
	f.mu.Unlock()

	if ok {
		f.logger.Debug("pending object resolved", zap.String("id", id), zap.Bool("failed", failed))
	}
}

// Pending reports whether anyone is waiting for id.
func (f *Fetcher) Pending(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[id]
	return ok
}

// Dependency reports whether a validation is waiting for id through FetchDependency.
func (f *Fetcher) Dependency(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.pending[id]
	return ok && r.dependents > 0
}

func fetchStatus(err error) string {
	switch {
	case err == nil:
		return "arrived"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
