package cascade

import "github.com/matzehuels/nodeshift/pkg/graph"

// Apply returns a new collection with every node in moves shifted vertically.
//
// With down=true each listed node moves down by its displacement, otherwise
// up. Shifted nodes are fresh copies; all other entries are the same
// pointers as in nodes. Neither nodes nor any node in it is modified.
func Apply(nodes []*graph.Node, moves MoveSet, down bool) []*graph.Node {
	sign := 1.0
	if !down {
		sign = -1.0
	}

	out := make([]*graph.Node, len(nodes))
	for i, n := range nodes {
		d, ok := moves[n.ID]
		if !ok {
			out[i] = n
			continue
		}
		moved := n.Clone()
		moved.Y += sign * d
		out[i] = moved
	}
	return out
}
