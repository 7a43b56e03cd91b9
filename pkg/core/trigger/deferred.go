package trigger

import (
	"sync"
	"time"

	"github.com/matzehuels/nodeshift/pkg/observability"
)

// Key extends Inputs with two version counters, typically the node and edge
// versions of the backing store.
type Key struct {
	Inputs
	NodesVersion uint64
	EdgesVersion uint64
}

// DeferredWatcher re-runs an expansion on a Queue whenever its key changes.
type DeferredWatcher struct {
	queue *Queue
	run   RunFunc

	mu      sync.Mutex
	last    Key
	seen    bool
	pending *Token

	// cleanup is only touched from queue tasks.
	cleanup func()
}

// NewDeferredWatcher creates a watcher that schedules run on q.
func NewDeferredWatcher(q *Queue, run RunFunc) *DeferredWatcher {
	return &DeferredWatcher{queue: q, run: run}
}

// Observe reports a new key. When it differs from the last one, any pending
// run is cancelled and a new run is deferred; Observe then returns true.
func (d *DeferredWatcher) Observe(k Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen && k == d.last {
		return false
	}
	prev := d.last
	d.last, d.seen = k, true

	if d.pending != nil && d.pending.Cancel() {
		observability.Scheduler().OnCancelled(prev.ID)
	}

	observability.Scheduler().OnScheduled(k.ID)
	d.pending = d.queue.Defer(func() {
		start := time.Now()
		d.release()
		d.cleanup = d.run(k.Inputs)
		observability.Scheduler().OnRun(k.ID, time.Since(start))
	})
	return true
}

// Close cancels a pending run and queues the reversal of the active
// expansion. Call Queue.Flush to wait for it.
func (d *DeferredWatcher) Close() {
	d.mu.Lock()
	if d.pending != nil && d.pending.Cancel() {
		observability.Scheduler().OnCancelled(d.last.ID)
	}
	d.pending = nil
	d.seen = false
	d.last = Key{}
	d.mu.Unlock()

	d.queue.Post(d.release)
}

func (d *DeferredWatcher) release() {
	if d.cleanup != nil {
		d.cleanup()
		d.cleanup = nil
	}
}
