package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroThreads is returned when a pool is created without workers
	ErrZeroThreads = errors.New("cannot create pool with zero workers")

	// ErrSend is returned when a job is submitted after shutdown has begun
	ErrSend = errors.New("failed to send job to pool")

	// ErrReceive is returned when the result channel is disconnected and empty
	ErrReceive = errors.New("failed to receive result")
)

// unknownPanic is the message recorded for panic payloads that are neither
// strings nor errors
const unknownPanic = "unknown panic"

// goexitMessage is the message recorded for a job that called runtime.Goexit
const goexitMessage = "job exited via runtime.Goexit"

// PanicError reports a job that panicked inside a worker.
// The worker recovers and keeps serving the queue.
type PanicError struct {
	// WorkerID is the worker that executed the job
	WorkerID int

	// Message is the panic payload converted to text
	Message string

	// Stack is the goroutine stack captured at recovery
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panicked: %s", e.WorkerID, e.Message)
}

// IsPanic reports whether err is or wraps a *PanicError
func IsPanic(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// panicMessage converts a recovered payload into a message
func panicMessage(r any) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return unknownPanic
	}
}
