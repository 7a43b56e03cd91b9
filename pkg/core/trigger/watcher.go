package trigger

import (
	"sync"

	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

// Inputs is the tuple whose change triggers a recomputation.
// Source must be a comparable value, typically a pointer.
type Inputs struct {
	ID           string
	ExpandHeight float64
	RootType     graph.RootType
	Source       cascade.Source
}

// RunFunc performs one expansion and returns its cleanup.
type RunFunc func(Inputs) (cleanup func())

// Expander returns a RunFunc that calls cascade.Expand with a fixed
// classifier and options.
func Expander(isTransformational cascade.Classifier, opts ...cascade.Option) RunFunc {
	return func(in Inputs) func() {
		if in.Source == nil {
			return func() {}
		}
		return cascade.Expand(in.Source, cascade.Request{
			ID:                 in.ID,
			ExpandHeight:       in.ExpandHeight,
			RootType:           in.RootType,
			IsTransformational: isTransformational,
		}, opts...)
	}
}

// Watcher re-runs an expansion synchronously whenever its inputs change.
type Watcher struct {
	mu      sync.Mutex
	run     RunFunc
	last    Inputs
	active  bool
	cleanup func()
}

// NewWatcher creates a watcher around run.
func NewWatcher(run RunFunc) *Watcher {
	return &Watcher{run: run}
}

// Observe reports new inputs. When they differ from the last observed tuple,
// the previous expansion is reversed and run is invoked; Observe then
// returns true. Identical inputs do nothing.
func (w *Watcher) Observe(in Inputs) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active && in == w.last {
		return false
	}
	w.release()
	w.last, w.active = in, true
	w.cleanup = w.run(in)
	return true
}

// Current returns the last observed inputs and whether an expansion is active.
func (w *Watcher) Current() (Inputs, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last, w.active
}

// Close reverses the active expansion, if any. The watcher can be reused.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.release()
	w.active = false
	w.last = Inputs{}
}

func (w *Watcher) release() {
	if w.cleanup != nil {
		w.cleanup()
		w.cleanup = nil
	}
}
