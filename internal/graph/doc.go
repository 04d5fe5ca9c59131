// Package graph provides the directed multigraph arena the engine stores
// its nodes and edges in.
//
// Node payloads are keyed by caller-issued ids of any ordered type, and
// edges carry a comparable payload, so parallel edges between the same pair
// of nodes stay distinguishable. Removing a node never disturbs the ids of
// the others, which is what lets mutation records reference nodes stably
// across undo and redo.
//
// The container is not safe for concurrent use; the engine drives it from a
// single thread.
package graph
