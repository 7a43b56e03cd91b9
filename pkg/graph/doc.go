// Package graph provides the node and graph types shared by every nodeshift
// package, plus their JSON serialization.
//
// # Core Types
//
//   - [Node]: a positioned box (top-left X/Y, optional Width/Height)
//   - [Edge]: a directed link, carried through untouched
//   - [Graph]: the file and API format, rooted at a [RootType]
//
// Unset dimensions fall back to [DefaultWidth] and [DefaultHeight], so a
// freshly exported layout can be processed before its boxes are measured.
//
// # Serialization
//
//	{
//	  "root_type": "dataset",
//	  "nodes": [{"id": "orders", "kind": "dataset", "x": 0, "y": 100}],
//	  "edges": []
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("lineage.json")
//	graph.WriteGraphFile(g, "shifted.json")
//	data, _ := graph.MarshalGraph(g)
//
// Every read path runs [Normalize]: nodes without IDs receive a UUID and
// duplicate IDs are rejected.
//
// # Collections
//
// Layout code works on []*Node so that unchanged nodes keep their identity
// across updates. Use [Graph.Refs] and [FromRefs] to convert.
package graph
