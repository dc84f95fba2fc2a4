package runloop

import "time"

// Synchronous is an executor that runs every task inline on the caller's
// goroutine, ignoring delays. It exists for tests and single-threaded hosts
// that already own a main loop.
type Synchronous struct{}

// Submit runs the task immediately.
func (Synchronous) Submit(task func()) error {
	task()
	return nil
}

// SubmitAfter runs the task immediately, discarding the delay.
func (Synchronous) SubmitAfter(_ time.Duration, task func()) error {
	task()
	return nil
}
