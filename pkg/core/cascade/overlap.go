package cascade

import (
	"math"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

// OverlapsX reports whether the horizontal spans of a and b intersect.
// Spans are half-open, so boxes that merely touch do not overlap.
func OverlapsX(a, b *graph.Node) bool {
	return math.Min(a.Right(), b.Right()) > math.Max(a.X, b.X)
}
