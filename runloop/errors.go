package runloop

import "errors"

var (
	// ErrNotStarted is returned when submitting to a loop that was never started
	ErrNotStarted = errors.New("run loop not started")
	// ErrAlreadyStarted is returned when starting a loop twice
	ErrAlreadyStarted = errors.New("run loop already started")
	// ErrStopped is returned when submitting to a stopped loop
	ErrStopped = errors.New("run loop stopped")
	// ErrQueueFull is returned when the task queue is full and the task was dropped
	ErrQueueFull = errors.New("run loop queue full")
	// ErrStopTimeout is returned when the loop fails to drain within the stop timeout
	ErrStopTimeout = errors.New("run loop stop timeout")
)
