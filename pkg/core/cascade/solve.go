package cascade

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

// MinSeparation is the default minimum vertical gap between cascaded boxes.
const MinSeparation = 10.0

// MoveSet maps node IDs to a strictly positive downward displacement.
// It is built fresh for every expansion and never persisted.
type MoveSet map[string]float64

// Len returns the number of displaced nodes.
func (m MoveSet) Len() int { return len(m) }

// IDs returns the displaced node IDs in sorted order.
func (m MoveSet) IDs() []string {
	return slices.Sorted(maps.Keys(m))
}

// Total returns the sum of all displacements.
func (m MoveSet) Total() float64 {
	var sum float64
	for _, id := range m.IDs() {
		sum += m[id]
	}
	return sum
}

// Solve computes the chained push for candidates below self.
//
// The frontier starts at self.Y + expandHeight. Candidates are visited in
// ascending Y (ties by ID); each one whose top lies less than the minimum
// separation below the frontier is pushed to exactly that separation, and the
// frontier moves to its new bottom edge. The first candidate that already
// clears the frontier ends the walk.
//
// The candidates slice is not modified.
func Solve(self *graph.Node, expandHeight float64, candidates []*graph.Node, opts ...Option) MoveSet {
	o := newOptions(opts)

	sorted := slices.Clone(candidates)
	slices.SortFunc(sorted, func(a, b *graph.Node) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	moves := make(MoveSet)
	frontier := self.Y + expandHeight
	for _, c := range sorted {
		gap := frontier + o.minSeparation - c.Y
		if gap <= 0 {
			break
		}
		moves[c.ID] = gap
		frontier = c.Y + gap + c.BoxHeight()
	}
	return moves
}
