package trigger

import (
	"sync"
	"sync/atomic"
)

// Queue runs tasks one at a time, in order, on a dedicated goroutine.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewQueue starts a queue.
func NewQueue() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		fn()
	}
}

// Post appends fn to the queue. It returns false once the queue is closed.
func (q *Queue) Post(fn func()) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Defer schedules fn behind everything already queued and returns a token
// that can discard it before it runs. On a closed queue the returned token
// is already cancelled.
func (q *Queue) Defer(fn func()) *Token {
	t := &Token{}
	if !q.Post(func() {
		if t.state.CompareAndSwap(tokenPending, tokenFired) {
			fn()
		}
	}) {
		t.state.Store(tokenCancelled)
	}
	return t
}

// Flush blocks until every task posted before it has run.
// It must not be called from a task.
func (q *Queue) Flush() {
	done := make(chan struct{})
	if !q.Post(func() { close(done) }) {
		return
	}
	<-done
}

// Close stops accepting tasks, runs the ones already queued and waits for
// the goroutine to exit. It must not be called from a task.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
}

const (
	tokenPending int32 = iota
	tokenCancelled
	tokenFired
)

// Token is a cancellation handle for a deferred task.
type Token struct {
	state atomic.Int32
}

// Cancel discards the task if it has not started. It reports whether the
// task was prevented from running.
func (t *Token) Cancel() bool {
	return t.state.CompareAndSwap(tokenPending, tokenCancelled)
}

// Cancelled reports whether the task was discarded.
func (t *Token) Cancelled() bool {
	return t.state.Load() == tokenCancelled
}

// Fired reports whether the task has started.
func (t *Token) Fired() bool {
	return t.state.Load() == tokenFired
}
