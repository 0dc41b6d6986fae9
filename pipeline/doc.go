// Package pipeline models the portable transform graph handed to the
// translation environment.
//
// A Graph is a DAG of transform Nodes connected by collection Edges. Edges
// carry a boundedness marker and an optional windowing strategy; nodes carry
// a closed Kind tag plus opaque user configuration. The package enforces the
// structural invariants translation relies on (acyclicity, endpoint
// existence, reachability) and provides deterministic topological ordering
// for the rewrite and translation passes.
//
// Graphs are built programmatically with AddNode/AddEdge or loaded from a
// portable JSON definition via ParseDefinition, which validates the document
// against an embedded JSON Schema first.
//
// ReplaceNode is the substitution primitive used by override rewriting: it
// swaps a single node for a small subgraph while preserving the identity of
// the boundary edges, so upstream and downstream consumers are unaffected.
package pipeline
