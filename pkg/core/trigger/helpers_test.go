package trigger_test

import (
	"github.com/matzehuels/nodeshift/pkg/core/trigger"
	"github.com/matzehuels/nodeshift/pkg/graph"
	"github.com/matzehuels/nodeshift/pkg/store"
)

func newStore() *store.Store {
	return store.New(graph.Graph{
		RootType: graph.RootDataset,
		Nodes: []graph.Node{
			{ID: "self", X: 0, Y: 100},
			{ID: "B", X: 0, Y: 150, Width: 240, Height: 40},
			{ID: "C", X: 0, Y: 210, Width: 240, Height: 40},
		},
	})
}

func y(s *store.Store, id string) float64 {
	n, ok := s.Node(id)
	if !ok {
		return -1
	}
	return n.Y
}

// recorder is a RunFunc that counts runs and cleanups.
type recorder struct {
	runs     []string
	cleanups int
}

func (r *recorder) run(in trigger.Inputs) func() {
	r.runs = append(r.runs, in.ID)
	return func() { r.cleanups++ }
}
