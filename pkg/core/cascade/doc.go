// Package cascade pushes nodes down when a node above them grows taller.
//
// # Overview
//
// When a node in a positioned graph expands inline (for example to reveal its
// columns), the boxes below it in the same horizontal band would be covered.
// This package computes how far each of those boxes must move so that they
// clear the grown node, applies the push as a pure transform over the node
// collection, and hands back a cleanup function that reverses it.
//
// # Pipeline
//
// An expansion runs four steps:
//
//  1. [SelectCandidates]: nodes at or below the reference node that overlap
//     it horizontally ([OverlapsX]) and are not exempt by the
//     transformational [Classifier].
//  2. [Solve]: sort candidates top to bottom (ties by ID) and walk them with a
//     running frontier. Each candidate that intrudes within [MinSeparation] of
//     the frontier is pushed just clear of it, and its new bottom edge
//     becomes the next frontier.
//  3. [Apply] with down=true: build a new collection in which pushed nodes are
//     copies with a larger Y and every other node keeps its pointer.
//  4. Later, [Apply] with down=false through the cleanup returned by
//     [Expand].
//
// The walk stops at the first candidate that already clears the frontier.
// A node further down that would still overlap is left alone.
//
// # Usage
//
//	cleanup := cascade.Expand(store, cascade.Request{
//	    ID:                 "orders",
//	    ExpandHeight:       240,
//	    RootType:           graph.RootDataset,
//	    IsTransformational: rules.IsTransformational,
//	})
//	defer cleanup()
//
// Use [Plan] to compute the [MoveSet] without touching the collection.
//
// # Exactness
//
// Reversal subtracts exactly what was added. For pixel-aligned inputs
// (integers or binary fractions) this restores every coordinate bit for bit.
//
// # Concurrency
//
// Functions in this package are synchronous and hold no state. Serialization
// of concurrent writers is the job of the [Source] implementation.
package cascade
