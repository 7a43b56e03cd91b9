// Package store holds the node collection that the layout core mutates.
//
// A [Store] is the single serializing entry point for position changes: every
// write goes through [Store.Update] (a pure transform) or [Store.Replace] (a
// new graph from the upstream layout engine). Readers get snapshots.
//
// Store implements cascade.Source.
package store

import (
	"slices"
	"sync"

	"github.com/matzehuels/nodeshift/pkg/graph"
)

// Versions counts structural changes to the collection. They only advance
// through Replace, so position updates never look like new data.
type Versions struct {
	Nodes uint64 // node set changed (IDs added, removed, or reordered)
	Edges uint64 // edge list changed
}

// Store owns a positioned node collection.
type Store struct {
	mu       sync.RWMutex
	root     graph.RootType
	nodes    []*graph.Node
	index    map[string]*graph.Node
	edges    []graph.Edge
	versions Versions
	revision uint64
}

// New creates a store seeded with g.
func New(g graph.Graph) *Store {
	s := &Store{}
	s.load(g)
	return s
}

func (s *Store) load(g graph.Graph) {
	s.root = g.RootType
	s.nodes = g.Refs()
	s.edges = slices.Clone(g.Edges)
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string]*graph.Node, len(s.nodes))
	for _, n := range s.nodes {
		s.index[n.ID] = n
	}
}

// Node returns the current node with the given ID.
func (s *Store) Node(id string) (*graph.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.index[id]
	return n, ok
}

// Nodes returns a snapshot of the collection. The slice is owned by the
// caller; the nodes are shared and must not be modified.
func (s *Store) Nodes() []*graph.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.nodes)
}

// Edges returns a copy of the edge list.
func (s *Store) Edges() []graph.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.edges)
}

// RootType returns the root type of the loaded graph.
func (s *Store) RootType() graph.RootType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// Update replaces the collection with transform(current) under the write
// lock. transform must not call back into the store.
func (s *Store) Update(transform func([]*graph.Node) []*graph.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = transform(slices.Clone(s.nodes))
	s.reindex()
	s.revision++
}

// Replace loads a new graph, bumping the version counters that changed.
func (s *Store) Replace(g graph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sameIDs(s.nodes, g.Nodes) {
		s.versions.Nodes++
	}
	if !slices.Equal(s.edges, g.Edges) {
		s.versions.Edges++
	}
	s.load(g)
	s.revision++
}

// Versions returns the structural version counters.
func (s *Store) Versions() Versions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions
}

// Revision counts every write, positional or structural.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Snapshot returns the collection in serialization form.
func (s *Store) Snapshot() graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return graph.FromRefs(s.root, s.nodes, s.edges)
}

func sameIDs(cur []*graph.Node, next []graph.Node) bool {
	if len(cur) != len(next) {
		return false
	}
	for i := range cur {
		if cur[i].ID != next[i].ID {
			return false
		}
	}
	return true
}
