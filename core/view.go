// File: view.go
// Role: Non-mutating graph views.
// Determinism:
//   - Edges are re-added in Edges() order, so the view's edge IDs follow the
//     canonical edge order of the source rather than its insertion history.
// Concurrency:
//   - Read lock on source; result is a fresh graph instance.

package core

// InducedSubgraph returns a new Graph induced by the set "keep" of vertex IDs:
// the result contains only vertices v where keep[v] is true and g has v, and
// all edges whose endpoints are both kept. The input graph is not mutated.
//
// Complexity: O(V + E·log E).
func InducedSubgraph(g *Graph, keep map[string]bool) *Graph {
	out := NewGraph()

	for _, id := range g.Vertices() {
		if keep[id] {
			out.addVertexLocked(id)
		}
	}
	for _, e := range g.Edges() {
		if !keep[e.From] || !keep[e.To] {
			continue
		}
		// endpoints exist and the pair is unique in g, so this cannot fail
		_, _ = out.AddEdge(e.From, e.To)
	}

	return out
}

