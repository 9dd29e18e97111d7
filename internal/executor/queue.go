package executor

import (
	"context"
	"errors"
	"sync"
)

// errQueueClosed is returned by pop once the queue is closed and drained
var errQueueClosed = errors.New("queue closed")

// queue is an unbounded FIFO shared between goroutines.
// It backs both the task queue (one producer, many workers) and the
// result channel (many workers, one consumer). Each item is handed to
// exactly one popper.
type queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends an item. It returns false if the queue is already closed.
func (q *queue[T]) push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.items = append(q.items, item)
	q.cond.Signal()
	return true
}

// pop blocks until an item is available, the queue is closed and empty,
// or ctx is done. The lock is held only while the item is claimed.
func (q *queue[T]) pop(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	for len(q.items) == 0 && !q.closed {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return zero, errQueueClosed
	}

	return q.take(), nil
}

// tryPop returns the next item without blocking
func (q *queue[T]) tryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.take(), true
}

// take removes the head item. Callers must hold q.mu.
func (q *queue[T]) take() T {
	var zero T
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return item
}

// close marks the queue closed and wakes all waiters.
// Items already queued remain poppable.
func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

func (q *queue[T]) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
