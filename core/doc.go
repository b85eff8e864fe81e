// Package core provides the thread-safe, undirected simple Graph on which the
// coordination game is played.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Undirected edges only; HasEdge(u,v) == HasEdge(v,u).
//   - Simple: self-loops and parallel edges are rejected.
//   - Unweighted: the game attaches rewards to vertices, never to edges.
//   - Deterministic iteration: Vertices(), Edges() and NeighborIDs() return
//     sorted results using the natural ID order (numeric IDs compare by value).
//   - Canonical edges: every Edge stores its endpoints with From < To, so any
//     computation that walks Edges() is independent of insertion order.
//
// Core Methods:
//
//	// Construction
//	NewGraph() *Graph
//	AddVertex(id string) error                  // O(1), idempotent
//	AddEdge(u, v string) (edgeID string, error) // O(1), adds missing endpoints
//	ReadEdgeList(r io.Reader) (*Graph, error)   // O(V+E)
//
//	// Query
//	HasVertex(id string) bool
//	HasEdge(u, v string) bool
//	Vertices() []string                 // O(V·log V)
//	Edges() []*Edge                     // O(E·log E)
//	NeighborIDs(id string) ([]string, error)
//	Degree(id string) (int, error)
//	VertexCount() int
//	EdgeCount() int
//
//	// Views
//	InducedSubgraph(g, keep) *Graph     // O(V+E), input untouched
//
// A Graph is built once and then shared read-only by every solver. All reads
// take a read lock, so concurrent sub-solves may walk the same instance.
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrLoopNotAllowed      – self-loop
//	ErrMultiEdgeNotAllowed – parallel edge
//	ErrBadEdgeList         – malformed edge-list input
package core
