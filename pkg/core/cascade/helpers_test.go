package cascade

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

// memSource is a minimal Source that records Update calls.
type memSource struct {
	nodes   []*graph.Node
	updates int
}

func newMemSource(nodes ...*graph.Node) *memSource {
	return &memSource{nodes: nodes}
}

func (s *memSource) Node(id string) (*graph.Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

func (s *memSource) Nodes() []*graph.Node { return slices.Clone(s.nodes) }

func (s *memSource) Update(transform func([]*graph.Node) []*graph.Node) {
	s.updates++
	s.nodes = transform(s.nodes)
}

func (s *memSource) y(id string) float64 {
	n, _ := s.Node(id)
	return n.Y
}

func node(id string, x, y, w, h float64) *graph.Node {
	return &graph.Node{ID: id, X: x, Y: y, Width: w, Height: h}
}

// randomNodes returns n boxes on an integer grid so arithmetic stays exact.
func randomNodes(r *rand.Rand, n int) []*graph.Node {
	out := make([]*graph.Node, n)
	for i := range out {
		out[i] = &graph.Node{
			ID:     string(rune('a'+i%26)) + string(rune('0'+i/26)),
			X:      float64(r.IntN(600)),
			Y:      float64(r.IntN(800)),
			Width:  float64(20 + r.IntN(200)),
			Height: float64(20 + r.IntN(100)),
		}
	}
	return out
}
