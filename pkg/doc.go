// Package pkg provides the libraries behind nodeshift, a collision avoidance
// engine for node-graph visualizations.
//
// # Overview
//
// When a node in a rendered graph grows (for example to show its details),
// the nodes stacked below it in the same column would overlap it. nodeshift
// pushes those nodes down just far enough to clear the expanded box, and
// returns a cleanup that puts everything back when the node collapses.
//
// # Architecture
//
// The typical data flow:
//
//	graph JSON
//	     ↓
//	[graph] package (types, read/write, normalize)
//	     ↓
//	[store] package (mutable node set with versions)
//	     ↓
//	[core/cascade] package (overlap, select, solve, apply, expand)
//	     ↓
//	[core/trigger] package (watch inputs, defer and cancel expansions)
//	     ↓
//	[render/nodelink] package (DOT and SVG output)
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("lineage.json")
//	st := store.New(g)
//	rules := classify.DefaultRules()
//
//	cleanup := cascade.Expand(st, cascade.Request{
//	    ID:                 "orders",
//	    ExpandHeight:       120,
//	    RootType:           g.RootType,
//	    IsTransformational: rules.IsTransformational,
//	})
//	defer cleanup()
//
// # Main Packages
//
// [core/cascade] holds the collision avoidance algorithm. [core/trigger]
// re-runs it when its inputs change. [classify] decides which nodes never
// move. [config], [cache] and [buildinfo] support the CLI and server.
//
// [core/cascade]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/core/cascade
// [core/trigger]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/core/trigger
// [classify]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/classify
// [config]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/cache
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/buildinfo
// [graph]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/graph
// [store]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/store
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/nodeshift/pkg/render/nodelink
package pkg
