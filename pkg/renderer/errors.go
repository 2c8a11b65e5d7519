package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkerCount is returned for worker counts below one
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrInvalidDimensions is returned for non-positive frame sizes
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	ErrNilScene = errors.New("scene is nil")
	ErrNilSink  = errors.New("sink is nil")

	// ErrShutdownTimeout is returned when workers do not exit in time
	ErrShutdownTimeout = errors.New("workers did not stop before the shutdown timeout")

	// ErrSinkClosed may be returned by a Sink to request a clean stop
	ErrSinkClosed = errors.New("sink closed")

	// ErrPoolStopped is returned when work is submitted to a stopped pool
	ErrPoolStopped = errors.New("worker pool stopped")

	// ErrAlreadyStarted is returned when Run is called more than once
	ErrAlreadyStarted = errors.New("coordinator already started")
)

// WorkerPanicError reports a panic recovered inside a worker. The frame that
// was being rendered is discarded.
type WorkerPanicError struct {
	Worker int
	Rows   RowRange
	Value  interface{}
	Stack  []byte
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("worker %d panicked rendering rows [%d, %d): %v", e.Worker, e.Rows.Start, e.Rows.End, e.Value)
}
