package cascade

import (
	"sync"
	"time"

	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/observability"
)

// Source is the externally owned node collection.
//
// Node and Nodes return snapshots. Update applies a pure transform and must
// serialize concurrent callers; the transform must not call back into the
// Source.
type Source interface {
	Node(id string) (*graph.Node, bool)
	Nodes() []*graph.Node
	Update(transform func([]*graph.Node) []*graph.Node)
}

// Request describes one expansion.
type Request struct {
	ID                 string         // node that grows
	ExpandHeight       float64        // extent the node is about to occupy below its top
	RootType           graph.RootType // passed through to IsTransformational
	IsTransformational Classifier     // nil exempts nothing
}

// Option configures Solve, Plan and Expand.
type Option func(*options)

type options struct {
	minSeparation float64
}

// WithMinSeparation overrides [MinSeparation]. Negative values are ignored.
func WithMinSeparation(sep float64) Option {
	return func(o *options) {
		if sep >= 0 {
			o.minSeparation = sep
		}
	}
}

func newOptions(opts []Option) options {
	o := options{minSeparation: MinSeparation}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Plan computes the MoveSet for req without modifying src.
// The bool is false when req.ID is not in src.
func Plan(src Source, req Request, opts ...Option) (MoveSet, bool) {
	moves, _, ok := plan(src, req, opts)
	return moves, ok
}

func plan(src Source, req Request, opts []Option) (MoveSet, int, bool) {
	self, ok := src.Node(req.ID)
	if !ok {
		return MoveSet{}, 0, false
	}
	candidates := SelectCandidates(self, src.Nodes(), req.RootType, req.IsTransformational)
	return Solve(self, req.ExpandHeight, candidates, opts...), len(candidates), true
}

// Expand pushes the nodes below req.ID out of the way and returns a cleanup
// function that pulls them back.
//
// When the node is missing or nothing needs to move, src.Update is never
// called and the cleanup does nothing. The cleanup only reverses once, so
// calling it twice cannot drift positions.
func Expand(src Source, req Request, opts ...Option) (cleanup func()) {
	_, cleanup = ExpandMoves(src, req, opts...)
	return cleanup
}

// ExpandMoves is Expand that also returns the applied MoveSet.
func ExpandMoves(src Source, req Request, opts ...Option) (MoveSet, func()) {
	start := time.Now()
	moves, candidates, found := plan(src, req, opts)
	observability.Cascade().OnExpand(req.ID, found, candidates, moves.Len(), time.Since(start))

	if moves.Len() == 0 {
		return moves, func() {}
	}

	src.Update(func(nodes []*graph.Node) []*graph.Node {
		return Apply(nodes, moves, true)
	})

	var once sync.Once
	return moves, func() {
		once.Do(func() {
			src.Update(func(nodes []*graph.Node) []*graph.Node {
				return Apply(nodes, moves, false)
			})
			observability.Cascade().OnCollapse(req.ID, moves.Len())
		})
	}
}
