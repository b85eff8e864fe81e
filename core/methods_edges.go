// File: methods_edges.go
// Role: Edge lifecycle & queries.
//
// Determinism:
//   - Edges() is sorted by (From, To) under LessID; edge IDs are assigned in
//     insertion order ("e1", "e2", ...).
//
// Concurrency:
//   - AddEdge takes the write lock once for both endpoints and the edge.
package core

import (
	"fmt"
	"slices"
	"sync/atomic"
)

const edgeIDPrefix = "e"

// AddEdge connects u and v with an undirected edge and returns its ID.
// Missing endpoints are added first. The edge is stored canonically, so
// AddEdge(u, v) and AddEdge(v, u) describe the same edge.
//
// Returns ErrEmptyVertexID, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(1).
func (g *Graph) AddEdge(u, v string) (string, error) {
	if u == "" || v == "" {
		return "", ErrEmptyVertexID
	}
	if u == v {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrLoopNotAllowed)
	}
	if LessID(v, u) {
		u, v = v, u
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.addVertexLocked(u)
	g.addVertexLocked(v)
	if _, dup := g.adjacency[u][v]; dup {
		return "", fmt.Errorf("AddEdge(%q,%q): %w", u, v, ErrMultiEdgeNotAllowed)
	}

	eid := fmt.Sprintf("%s%d", edgeIDPrefix, atomic.AddUint64(&g.nextEdgeID, 1))
	g.edges[eid] = &Edge{ID: eid, From: u, To: v}
	g.adjacency[u][v] = eid
	g.adjacency[v][u] = eid

	return eid, nil
}

// HasEdge reports whether u and v are adjacent. Direction does not matter.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[u][v]

	return ok
}

// Edges returns all edges sorted by (From, To).
// The returned Edge values are copies; mutating them does not affect g.
// Complexity: O(E·log E).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		cp := *e
		out = append(out, &cp)
	}
	g.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Edge) int {
		if c := CompareID(a.From, b.From); c != 0 {
			return c
		}
		return CompareID(a.To, b.To)
	})

	return out
}

// EdgeCount returns |E|.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}
