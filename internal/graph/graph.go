package graph

import (
	"cmp"
	"fmt"
	"slices"
)

// Arc is one directed edge together with its payload.
type Arc[K cmp.Ordered, E comparable] struct {
	From    K
	To      K
	Payload E
}

type vertex[K cmp.Ordered, N any, E comparable] struct {
	payload N
	out     []Arc[K, E]
	in      []Arc[K, E]
}

// Graph is the arena. K is the id type, N the node payload, E the edge
// payload.
type Graph[K cmp.Ordered, N any, E comparable] struct {
	nodes map[K]*vertex[K, N, E]
	edges int
}

// New creates and returns an initialized, empty Graph.
func New[K cmp.Ordered, N any, E comparable]() *Graph[K, N, E] {
	return &Graph[K, N, E]{
		nodes: make(map[K]*vertex[K, N, E]),
	}
}

// Insert adds a node under the given id. Inserting an id that is already
// present is an error.
func (g *Graph[K, N, E]) Insert(id K, payload N) error {
	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("node already exists: %v", id)
	}
	g.nodes[id] = &vertex[K, N, E]{payload: payload}
	return nil
}

// Get returns the payload stored under id.
func (g *Graph[K, N, E]) Get(id K) (N, bool) {
	v, ok := g.nodes[id]
	if !ok {
		var zero N
		return zero, false
	}
	return v.payload, true
}

// Contains reports whether a node with the given id exists.
func (g *Graph[K, N, E]) Contains(id K) bool {
	_, ok := g.nodes[id]
	return ok
}

// Remove deletes the node and every edge incident to it, returning the
// payload that was stored.
func (g *Graph[K, N, E]) Remove(id K) (N, bool) {
	v, ok := g.nodes[id]
	if !ok {
		var zero N
		return zero, false
	}
	for _, arc := range v.out {
		detach(&g.nodes[arc.To].in, arc)
		g.edges--
	}
	for _, arc := range v.in {
		detach(&g.nodes[arc.From].out, arc)
		g.edges--
	}
	delete(g.nodes, id)
	return v.payload, true
}

func detach[K cmp.Ordered, E comparable](arcs *[]Arc[K, E], arc Arc[K, E]) {
	for i, a := range *arcs {
		if a == arc {
			*arcs = slices.Delete(*arcs, i, i+1)
			return
		}
	}
}

// AddEdge creates a directed edge from `from` to `to` carrying the payload.
// Both nodes must exist, self-references are not allowed, and an identical
// edge may not be added twice.
func (g *Graph[K, N, E]) AddEdge(from, to K, payload E) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %v -> %v", from, to)
	}
	src, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %v", from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination node not found: %v", to)
	}
	arc := Arc[K, E]{From: from, To: to, Payload: payload}
	if slices.Contains(src.out, arc) {
		return fmt.Errorf("edge already exists: %v -> %v", from, to)
	}
	src.out = append(src.out, arc)
	dst.in = append(dst.in, arc)
	g.edges++
	return nil
}

// RemoveEdge deletes the edge matching from, to, and payload exactly,
// reporting whether one was found.
func (g *Graph[K, N, E]) RemoveEdge(from, to K, payload E) bool {
	src, ok := g.nodes[from]
	if !ok {
		return false
	}
	arc := Arc[K, E]{From: from, To: to, Payload: payload}
	if !slices.Contains(src.out, arc) {
		return false
	}
	detach(&src.out, arc)
	detach(&g.nodes[to].in, arc)
	g.edges--
	return true
}

// Outgoing returns a copy of the edges leaving the node.
func (g *Graph[K, N, E]) Outgoing(id K) []Arc[K, E] {
	v, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(v.out)
}

// Incoming returns a copy of the edges arriving at the node.
func (g *Graph[K, N, E]) Incoming(id K) []Arc[K, E] {
	v, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(v.in)
}

// Incident returns every edge touching the node, incoming first.
func (g *Graph[K, N, E]) Incident(id K) []Arc[K, E] {
	v, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]Arc[K, E], 0, len(v.in)+len(v.out))
	out = append(out, v.in...)
	out = append(out, v.out...)
	return out
}

// Len returns the number of nodes.
func (g *Graph[K, N, E]) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph[K, N, E]) EdgeCount() int { return g.edges }

// IDs returns every node id in ascending order.
func (g *Graph[K, N, E]) IDs() []K {
	out := make([]K, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Edges returns every edge in the graph, grouped by source id in ascending
// order.
func (g *Graph[K, N, E]) Edges() []Arc[K, E] {
	out := make([]Arc[K, E], 0, g.edges)
	for _, id := range g.IDs() {
		out = append(out, g.nodes[id].out...)
	}
	return out
}

// HasPath reports whether `to` is reachable from `from` by following edge
// direction. A node is trivially reachable from itself.
func (g *Graph[K, N, E]) HasPath(from, to K) bool {
	if !g.Contains(from) || !g.Contains(to) {
		return false
	}
	if from == to {
		return true
	}
	seen := make(map[K]bool)

	var visit func(id K) bool
	visit = func(id K) bool {
		if id == to {
			return true
		}
		if seen[id] {
			return false
		}
		seen[id] = true
		for _, arc := range g.nodes[id].out {
			if visit(arc.To) {
				return true
			}
		}
		return false
	}

	return visit(from)
}

// TopoOrder returns the node ids in dependency order: every edge source
// comes before its sinks, with ascending ids breaking ties so the order is
// deterministic. Nodes trapped in a cycle are omitted; the engine rejects
// cycle-forming edges up front, so on its graphs the order is always
// complete.
func (g *Graph[K, N, E]) TopoOrder() []K {
	indegree := make(map[K]int, len(g.nodes))
	for id, v := range g.nodes {
		indegree[id] += 0
		for _, arc := range v.out {
			indegree[arc.To]++
		}
	}

	ready := make([]K, 0, len(g.nodes))
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]K, 0, len(g.nodes))
	for len(ready) > 0 {
		// Take the smallest ready id to keep the order stable.
		slices.Sort(ready)
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		for _, arc := range g.nodes[id].out {
			indegree[arc.To]--
			if indegree[arc.To] == 0 {
				ready = append(ready, arc.To)
			}
		}
	}
	return order
}
