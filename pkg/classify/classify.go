// Package classify decides which nodes are transformational.
//
// A transformational node (a job or flow that transforms data) is not a
// layout obstacle: the cascade never pushes it. Which node kinds count as
// transformational depends on the root entity type of the graph.
package classify

import (
	"sort"

	"github.com/matzehuels/nodeshift/pkg/errors"
	"github.com/matzehuels/nodeshift/pkg/graph"
)

// Rules maps a root type to the set of node kinds that are transformational
// under it.
type Rules map[graph.RootType]map[string]bool

// DefaultRules returns the built-in kind table.
func DefaultRules() Rules {
	return Rules{
		graph.RootDataset:   set("dataJob", "dataFlow"),
		graph.RootChart:     set("dataJob"),
		graph.RootDashboard: set("dataJob"),
		graph.RootMLModel:   set("dataJob", "mlFeatureTable"),
	}
}

// FromConfig builds rules from a root type to kinds mapping, typically read
// from a config file. Unknown root types are rejected.
func FromConfig(m map[string][]string) (Rules, error) {
	r := make(Rules, len(m))
	for root, kinds := range m {
		rt, err := graph.ParseRootType(root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "transformational rules for %q", root)
		}
		r[rt] = set(kinds...)
	}
	return r, nil
}

// Merge returns a copy of r with the entries of other replacing those of r
// for the same root type.
func (r Rules) Merge(other Rules) Rules {
	out := make(Rules, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// IsTransformational reports whether n is transformational under root.
// A boolean "transformational" entry in the node data takes precedence over
// the kind table.
func (r Rules) IsTransformational(n *graph.Node, root graph.RootType) bool {
	if n == nil {
		return false
	}
	if v, ok := n.Data[graph.DataTransformational].(bool); ok {
		return v
	}
	return r[root][n.Kind]
}

// Kinds returns the sorted transformational kinds for root.
func (r Rules) Kinds(root graph.RootType) []string {
	kinds := make([]string, 0, len(r[root]))
	for k, ok := range r[root] {
		if ok {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	return kinds
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
