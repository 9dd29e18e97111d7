package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aryankumar/sortpool/internal/util"
)

// Job is a one-shot unit of work producing a value of the pool's result type
type Job[R any] func() R

// Outcome is the result of executing one job
type Outcome[R any] struct {
	// Value is the job's return value (zero if Err is set)
	Value R

	// Err is nil on success, otherwise the failure (usually a *PanicError)
	Err error

	// WorkerID identifies the worker that executed the job
	WorkerID int

	// Duration is how long the job took to execute
	Duration time.Duration
}

// OK reports whether the outcome is a success
func (o Outcome[R]) OK() bool {
	return o.Err == nil
}

// Pool runs jobs on a fixed number of worker goroutines.
// Outcomes are delivered in completion order, one per submitted job.
type Pool[R any] struct {
	jobs    *queue[Job[R]]
	results *queue[Outcome[R]]
	workers []*worker[R]

	// wg tracks live workers
	wg   sync.WaitGroup
	live atomic.Int32

	submitted atomic.Int64
	closed    atomic.Bool

	logger *slog.Logger
}

// New creates a pool and starts exactly n workers.
// It fails with ErrZeroThreads before starting anything when n <= 0.
func New[R any](n int, logger *slog.Logger) (*Pool[R], error) {
	if n <= 0 {
		if n == 0 {
			return nil, ErrZeroThreads
		}
		return nil, fmt.Errorf("%w: got %d", ErrZeroThreads, n)
	}

	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool[R]{
		jobs:    newQueue[Job[R]](),
		results: newQueue[Outcome[R]](),
		workers: make([]*worker[R], n),
		logger:  logger,
	}

	p.live.Store(int32(n))
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		w := newWorker(i, p.jobs, p.results, logger)
		p.workers[i] = w
		go p.runWorker(w)
	}

	logger.Debug("worker pool started", "workers", n)
	return p, nil
}

// runWorker runs w until the task queue closes. A job that ends the goroutine
// with runtime.Goexit skips the normal return; the worker is then restarted on
// a new goroutine so the pool keeps exactly n workers.
func (p *Pool[R]) runWorker(w *worker[R]) {
	exited := false
	defer func() {
		if !exited {
			p.logger.Warn("restarting worker after runtime.Goexit", "worker_id", w.id)
			go p.runWorker(w)
			return
		}

		// The last worker out disconnects the result channel before Close
		// can observe the worker as done.
		if p.live.Add(-1) == 0 {
			p.results.close()
		}
		p.wg.Done()
	}()

	exited = w.run()
}

// Submit enqueues a job. It never blocks.
// Returns ErrSend once the pool has begun shutting down.
func (p *Pool[R]) Submit(job Job[R]) error {
	if job == nil {
		return fmt.Errorf("job must not be nil")
	}

	if !p.jobs.push(job) {
		return ErrSend
	}

	p.submitted.Add(1)
	return nil
}

// Recv blocks until one outcome is available and returns its value or failure.
// It returns ErrReceive if every worker has exited and no outcome is pending.
func (p *Pool[R]) Recv(ctx context.Context) (R, error) {
	outcome, err := p.RecvOutcome(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return outcome.Value, outcome.Err
}

// RecvOutcome is like Recv but returns the whole outcome.
// The error return is reserved for receive failures and ctx cancellation;
// job failures are reported in Outcome.Err.
func (p *Pool[R]) RecvOutcome(ctx context.Context) (Outcome[R], error) {
	outcome, err := p.results.pop(ctx)
	if err != nil {
		if errors.Is(err, errQueueClosed) {
			return Outcome[R]{}, ErrReceive
		}
		return Outcome[R]{}, err
	}
	return outcome, nil
}

// Drain returns the values of every outcome currently buffered, without
// blocking, in arrival order. All buffered outcomes are consumed: failed
// outcomes are collected into a *util.MultiError returned alongside the
// successful values, so no result is dropped.
func (p *Pool[R]) Drain() ([]R, error) {
	values := make([]R, 0, p.results.len())
	errs := &util.MultiError{}

	for {
		outcome, ok := p.results.tryPop()
		if !ok {
			break
		}
		if outcome.Err != nil {
			errs.Add(outcome.Err)
			continue
		}
		values = append(values, outcome.Value)
	}

	return values, errs.ErrorOrNil()
}

// Shutdown closes the task queue. Jobs already queued still run and their
// outcomes remain receivable; workers exit once the queue is empty.
func (p *Pool[R]) Shutdown() {
	if p.jobs.isClosed() {
		return
	}
	p.jobs.close()
	p.logger.Debug("task queue closed", "pending", p.jobs.len())
}

// Close tears the pool down: it closes the task queue and waits for every
// worker to exit. Close may only be called once.
func (p *Pool[R]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("pool already closed")
	}

	p.logger.Debug("closing worker pool", "workers", len(p.workers))
	p.Shutdown()

	p.wg.Wait()

	for _, w := range p.workers {
		if w.State() != WorkerStateExited {
			p.logger.Warn("worker did not exit cleanly", "worker_id", w.id, "state", w.State())
		}
	}

	p.logger.Debug("all workers joined", "workers", len(p.workers))
	return nil
}

// Size returns the number of workers the pool was created with
func (p *Pool[R]) Size() int {
	return len(p.workers)
}

// LiveWorkers returns the number of workers that have not exited
func (p *Pool[R]) LiveWorkers() int {
	return int(p.live.Load())
}

// Submitted returns the number of jobs accepted so far
func (p *Pool[R]) Submitted() int64 {
	return p.submitted.Load()
}

// QueueLength returns the number of jobs waiting for a worker
func (p *Pool[R]) QueueLength() int {
	return p.jobs.len()
}

// IsShutdown reports whether the task queue has been closed
func (p *Pool[R]) IsShutdown() bool {
	return p.jobs.isClosed()
}

// WorkerStats returns a snapshot of every worker's counters
func (p *Pool[R]) WorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}
