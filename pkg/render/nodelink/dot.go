package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/nodeshift/pkg/core/cascade"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

const pointsPerInch = 72.0

// Highlight colors.
const (
	fillDefault = "white"
	fillShifted = "#fde68a"
	fillFocus   = "#bfdbfe"
)

// Options configures diagram generation.
type Options struct {
	// Highlight marks nodes that a cascade pushed, with their offsets.
	Highlight cascade.MoveSet

	// Focus is the expanded node, drawn in a distinct color.
	Focus string

	// Detailed adds the node kind, the offset and any data to labels.
	Detailed bool
}

// ToDOT converts g to Graphviz DOT with every node pinned at its position.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontsize=14];\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	w, h := n.BoxWidth(), n.BoxHeight()
	cx, cy := n.X+w/2, n.Y+h/2

	fill := fillDefault
	delta, shifted := opts.Highlight[n.ID]
	switch {
	case n.ID == opts.Focus:
		fill = fillFocus
	case shifted:
		fill = fillShifted
	}

	return []string{
		fmt.Sprintf("label=%q", label(n, delta, shifted, opts.Detailed)),
		fmt.Sprintf("pos=\"%s,%s!\"", num(cx), num(-cy)),
		"width=" + num(w/pointsPerInch),
		"height=" + num(h/pointsPerInch),
		fmt.Sprintf("fillcolor=%q", fill),
	}
}

func label(n *graph.Node, delta float64, shifted, detailed bool) string {
	text := n.DisplayLabel()
	if !detailed {
		return text
	}

	parts := []string{text}
	if n.Kind != "" {
		parts = append(parts, n.Kind)
	}
	if shifted {
		parts = append(parts, "+"+num(delta))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Data)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data[k]))
	}
	return strings.Join(parts, "\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
