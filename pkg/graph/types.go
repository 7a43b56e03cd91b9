package graph

import (
	"slices"

	"github.com/matzehuels/nodeshift/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Default box dimensions used when a node carries no measured size.
const (
	DefaultWidth  = 240.0
	DefaultHeight = 80.0
)

// DataTransformational is the node data key that overrides kind-based
// transformational classification when it holds a bool.
const DataTransformational = "transformational"

// =============================================================================
// RootType - Entity Kind at the Root of the View
// =============================================================================

// RootType identifies the kind of entity a visualization is rooted at.
// It is only interpreted by classifiers, never by the layout core.
type RootType string

// Known root types.
const (
	RootDataset   RootType = "dataset"
	RootDataJob   RootType = "dataJob"
	RootDataFlow  RootType = "dataFlow"
	RootChart     RootType = "chart"
	RootDashboard RootType = "dashboard"
	RootMLModel   RootType = "mlModel"
)

// RootTypes lists every known root type in display order.
var RootTypes = []RootType{
	RootDataset,
	RootDataJob,
	RootDataFlow,
	RootChart,
	RootDashboard,
	RootMLModel,
}

// ParseRootType validates s against the known root types.
func ParseRootType(s string) (RootType, error) {
	rt := RootType(s)
	if !slices.Contains(RootTypes, rt) {
		return "", errors.New(errors.ErrCodeInvalidRootType, "unknown root type: %q", s)
	}
	return rt, nil
}

// String implements fmt.Stringer.
func (r RootType) String() string { return string(r) }

// =============================================================================
// Node - Positioned Box
// =============================================================================

// Node is a positioned box in the visualization.
//
// X and Y are the top-left corner; y grows downward. Width and Height are
// optional: values <= 0 mean "not measured yet" and fall back to
// [DefaultWidth] and [DefaultHeight]. Data is classification payload that the
// layout core never reads; treat it as read-only once a node is shared.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"`
	Kind   string         `json:"kind,omitempty"` // entity type, e.g. "dataset", "dataJob"
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width,omitempty"`
	Height float64        `json:"height,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// BoxWidth returns Width, or DefaultWidth when unset.
func (n *Node) BoxWidth() float64 {
	if n.Width > 0 {
		return n.Width
	}
	return DefaultWidth
}

// BoxHeight returns Height, or DefaultHeight when unset.
func (n *Node) BoxHeight() float64 {
	if n.Height > 0 {
		return n.Height
	}
	return DefaultHeight
}

// Right returns the x-coordinate of the right edge.
func (n *Node) Right() float64 { return n.X + n.BoxWidth() }

// Bottom returns the y-coordinate of the bottom edge.
func (n *Node) Bottom() float64 { return n.Y + n.BoxHeight() }

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Clone returns a shallow copy of n. The Data map is shared.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// =============================================================================
// Edge - Directed Link
// =============================================================================

// Edge represents a directed edge between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Graph - Serialization Format
// =============================================================================

// Graph is the canonical serialization format for positioned node graphs, as
// produced by an upstream layout engine.
type Graph struct {
	RootType RootType `json:"root_type,omitempty"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
}

// Refs returns a pointer per node, each pointing at a private copy.
func (g Graph) Refs() []*Node {
	out := make([]*Node, len(g.Nodes))
	for i := range g.Nodes {
		n := g.Nodes[i]
		out[i] = &n
	}
	return out
}

// FromRefs builds a Graph from a node collection, copying node values.
func FromRefs(root RootType, nodes []*Node, edges []Edge) Graph {
	out := Graph{
		RootType: root,
		Nodes:    make([]Node, len(nodes)),
		Edges:    slices.Clone(edges),
	}
	for i, n := range nodes {
		out.Nodes[i] = *n
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return out
}
