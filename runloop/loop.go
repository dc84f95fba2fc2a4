// Package runloop provides a serial single-goroutine executor: the Go
// equivalent of the main-loop discipline the navigation tree requires. All
// tree mutation runs on one logical thread; callers on other goroutines
// submit onto the loop instead of mutating directly.
package runloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a serial executor. Tasks run strictly in submission order on a
// single goroutine; delayed tasks re-enter the queue when their timer fires.
type Loop struct {
	// Configuration
	queueSize int

	// Runtime state
	tasks chan func()
	wg    *sync.WaitGroup

	// Lifecycle management
	lifecycleMu sync.Mutex
	started     bool
	closing     bool
	stopped     bool

	// Statistics (atomic)
	submitted int64
	executed  int64
	dropped   int64
}

// New creates a run loop with the given task queue capacity.
func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 256 // Default queue size
	}
	return &Loop{
		queueSize: queueSize,
		tasks:     make(chan func(), queueSize),
	}
}

// Start starts the loop goroutine.
func (l *Loop) Start(ctx context.Context) error {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if l.started {
		return ErrAlreadyStarted
	}

	l.wg = &sync.WaitGroup{}
	l.wg.Add(1)
	go l.run(ctx)

	l.started = true
	return nil
}

// Stop closes the queue and waits for queued tasks to drain.
func (l *Loop) Stop(timeout time.Duration) error {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if !l.started || l.stopped {
		return nil
	}

	// A prior Stop may have timed out with the queue already closed; only
	// close once and keep waiting for the drain.
	if !l.closing {
		l.closing = true
		close(l.tasks)
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		l.stopped = true
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}

// Submit enqueues a task. Returns ErrQueueFull (and drops the task) when the
// queue is full rather than blocking the caller.
func (l *Loop) Submit(task func()) error {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if !l.started {
		return ErrNotStarted
	}
	if l.closing || l.stopped {
		return ErrStopped
	}

	select {
	case l.tasks <- task:
		atomic.AddInt64(&l.submitted, 1)
		return nil
	default:
		atomic.AddInt64(&l.dropped, 1)
		return ErrQueueFull
	}
}

// SubmitAfter schedules a task to enter the queue after the given delay.
// A non-positive delay submits immediately. Submission failures after the
// delay are counted as drops.
func (l *Loop) SubmitAfter(delay time.Duration, task func()) error {
	if delay <= 0 {
		return l.Submit(task)
	}

	l.lifecycleMu.Lock()
	if !l.started {
		l.lifecycleMu.Unlock()
		return ErrNotStarted
	}
	if l.closing || l.stopped {
		l.lifecycleMu.Unlock()
		return ErrStopped
	}
	l.lifecycleMu.Unlock()

	time.AfterFunc(delay, func() {
		if err := l.Submit(task); err != nil {
			atomic.AddInt64(&l.dropped, 1)
		}
	})
	return nil
}

// Stats returns current loop statistics
func (l *Loop) Stats() Stats {
	return Stats{
		QueueSize:  l.queueSize,
		QueueDepth: len(l.tasks),
		Submitted:  atomic.LoadInt64(&l.submitted),
		Executed:   atomic.LoadInt64(&l.executed),
		Dropped:    atomic.LoadInt64(&l.dropped),
	}
}

// Stats represents run loop statistics
type Stats struct {
	QueueSize  int   `json:"queue_size"`
	QueueDepth int   `json:"queue_depth"`
	Submitted  int64 `json:"submitted"`
	Executed   int64 `json:"executed"`
	Dropped    int64 `json:"dropped"`
}

// run drains the task queue serially until the context is cancelled or the
// queue is closed.
func (l *Loop) run(ctx context.Context) {
	defer l.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-l.tasks:
			if !ok {
				return
			}
			task()
			atomic.AddInt64(&l.executed, 1)
		}
	}
}
