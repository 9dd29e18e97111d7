package executor

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// WorkerState is the lifecycle state of a worker
type WorkerState int32

const (
	// WorkerStateRunning means the worker is waiting for the next job
	WorkerStateRunning WorkerState = iota
	// WorkerStateExecuting means the worker is running a job
	WorkerStateExecuting
	// WorkerStateExited means the task queue closed and the worker returned
	WorkerStateExited
)

// String returns the string representation of WorkerState
func (s WorkerState) String() string {
	switch s {
	case WorkerStateRunning:
		return "running"
	case WorkerStateExecuting:
		return "executing"
	case WorkerStateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// WorkerStats is a snapshot of one worker's counters
type WorkerStats struct {
	ID        int
	State     WorkerState
	Processed int64
	Failed    int64
}

// worker pulls jobs from the task queue until it is closed and pushes
// exactly one outcome per job onto the result queue
type worker[R any] struct {
	id      int
	jobs    *queue[Job[R]]
	results *queue[Outcome[R]]
	logger  *slog.Logger

	state     atomic.Int32
	processed atomic.Int64
	failed    atomic.Int64
}

func newWorker[R any](id int, jobs *queue[Job[R]], results *queue[Outcome[R]], logger *slog.Logger) *worker[R] {
	return &worker[R]{
		id:      id,
		jobs:    jobs,
		results: results,
		logger:  logger,
	}
}

// run is the worker loop. It returns true once the task queue is closed and
// empty. If a job ends the goroutine with runtime.Goexit, run never returns;
// the failure has already been reported and the caller restarts the loop.
func (w *worker[R]) run() bool {
	w.state.Store(int32(WorkerStateRunning))
	w.logger.Debug("worker started", "worker_id", w.id)

	for {
		job, err := w.jobs.pop(context.Background())
		if err != nil {
			w.state.Store(int32(WorkerStateExited))
			w.logger.Debug("worker received shutdown signal", "worker_id", w.id)
			return true
		}

		w.state.Store(int32(WorkerStateExecuting))
		w.execute(job)
		w.state.Store(int32(WorkerStateRunning))
	}
}

// execute runs one job and pushes exactly one outcome for it. A panic, or a
// job that exits its goroutine through runtime.Goexit, becomes a failed
// outcome.
func (w *worker[R]) execute(job Job[R]) {
	var outcome Outcome[R]
	start := time.Now()
	outcome.WorkerID = w.id
	completed := false

	defer func() {
		outcome.Duration = time.Since(start)

		// The result queue is only closed after every worker has exited,
		// so these pushes cannot be rejected.
		r := recover()
		if r == nil && completed {
			w.processed.Add(1)
			w.logger.Debug("job completed", "worker_id", w.id, "duration", outcome.Duration)
			w.results.push(outcome)
			return
		}

		message := goexitMessage
		var stack []byte
		if r != nil {
			message = panicMessage(r)
			stack = debug.Stack()
		}

		var zero R
		outcome.Value = zero
		outcome.Err = &PanicError{
			WorkerID: w.id,
			Message:  message,
			Stack:    stack,
		}
		w.failed.Add(1)
		w.logger.Warn("job panicked",
			"worker_id", w.id,
			"panic", outcome.Err,
			"duration", outcome.Duration)
		w.results.push(outcome)
	}()

	outcome.Value = job()
	completed = true
}

// State returns the current worker state
func (w *worker[R]) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Stats returns a snapshot of the worker counters
func (w *worker[R]) Stats() WorkerStats {
	return WorkerStats{
		ID:        w.id,
		State:     w.State(),
		Processed: w.processed.Load(),
		Failed:    w.failed.Load(),
	}
}
