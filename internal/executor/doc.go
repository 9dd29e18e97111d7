// Package executor provides a fixed-size worker pool for CPU-bound batches of work.
//
// A Pool owns N worker goroutines, an unbounded task queue feeding them and an
// unbounded result queue they report into. Every submitted Job yields exactly
// one Outcome. A Job that panics is recovered inside its worker and reported as
// a *PanicError outcome; the pool and the other workers keep running.
//
// # Basic Usage
//
//	pool, err := executor.New[int](4, logger)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	for i := 0; i < 10; i++ {
//	    pool.Submit(func() int { return i * i })
//	}
//
//	for i := 0; i < 10; i++ {
//	    v, err := pool.Recv(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(v)
//	}
//
// # Receiving Outcomes
//
// Outcomes arrive in completion order, not submission order. Recv blocks for
// the next outcome, RecvOutcome also returns the worker and duration, and Drain
// collects whatever is already buffered without blocking. Drain never drops
// values: failures are returned as a *util.MultiError next to the successes.
//
// # Errors
//
//   - ErrZeroThreads: New was called with n <= 0
//   - ErrSend: Submit was called after Shutdown or Close
//   - *PanicError: a job panicked; carries the message and stack
//   - ErrReceive: every worker has exited and no outcome is pending
//
// # Shutdown
//
// Shutdown closes the task queue; queued jobs still run and their outcomes stay
// receivable. Close calls Shutdown and waits for every worker to exit. Callers
// should defer Close right after New so workers are released on every path.
package executor
