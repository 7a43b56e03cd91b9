package cascade

import "github.com/matzehuels/nodeshift/pkg/graph"

// Classifier reports whether n is transformational for the given root type.
// Transformational nodes are never displaced.
type Classifier func(n *graph.Node, root graph.RootType) bool

// SelectCandidates returns the nodes eligible to be pushed by self.
//
// A node qualifies when it is not self, its top is at or below self's top,
// it is not transformational for root, and it overlaps self horizontally.
// The result is in input order. A nil classifier exempts nothing.
func SelectCandidates(self *graph.Node, nodes []*graph.Node, root graph.RootType, isTransformational Classifier) []*graph.Node {
	var out []*graph.Node
	for _, n := range nodes {
		if n.ID == self.ID || n.Y < self.Y {
			continue
		}
		if isTransformational != nil && isTransformational(n, root) {
			continue
		}
		if OverlapsX(self, n) {
			out = append(out, n)
		}
	}
	return out
}
