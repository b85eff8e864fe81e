package flow

import "math"

// arc is one directed residual arc. rev indexes the paired reverse arc in
// the adjacency list of to.
type arc struct {
	to  int
	rev int
	cap float64
}

// Network is a directed capacitated network over nodes 0..n-1, stored as
// residual adjacency lists. Parallel arcs are allowed and act additively.
// A Network is mutated by the max-flow routines: capacities become residual
// capacities.
type Network struct {
	adj [][]arc
}

// NewNetwork returns an empty network with n nodes.
func NewNetwork(n int) *Network {
	return &Network{adj: make([][]arc, n)}
}

// Nodes returns the number of nodes.
func (nw *Network) Nodes() int { return len(nw.adj) }

// AddArc adds a directed arc u→v with the given capacity and its zero
// capacity reverse arc. Self-loops are ignored.
func (nw *Network) AddArc(u, v int, capacity float64) error {
	if u < 0 || u >= len(nw.adj) || v < 0 || v >= len(nw.adj) {
		return ErrNodeOutOfRange
	}
	if capacity < 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return EdgeError{From: u, To: v, Cap: capacity}
	}
	if u == v {
		return nil
	}
	nw.adj[u] = append(nw.adj[u], arc{to: v, rev: len(nw.adj[v]), cap: capacity})
	nw.adj[v] = append(nw.adj[v], arc{to: u, rev: len(nw.adj[u]) - 1, cap: 0})

	return nil
}

// AddEdge adds an undirected edge of the given capacity (u→v and v→u).
func (nw *Network) AddEdge(u, v int, capacity float64) error {
	if err := nw.AddArc(u, v, capacity); err != nil {
		return err
	}
	return nw.AddArc(v, u, capacity)
}

// push moves f units along arc index i of u and credits the reverse arc.
func (nw *Network) push(u, i int, f float64) {
	a := &nw.adj[u][i]
	a.cap -= f
	nw.adj[a.to][a.rev].cap += f
}

// SourceSide returns, after a max-flow run from source, the minimum cut side
// containing source: side[v] is true iff v is reachable from source through
// arcs with residual capacity > eps. Among all minimum cuts this is the one
// with the smallest source side.
func (nw *Network) SourceSide(source int, eps float64) []bool {
	side := make([]bool, len(nw.adj))
	if source < 0 || source >= len(nw.adj) {
		return side
	}
	side[source] = true
	queue := []int{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range nw.adj[u] {
			if a.cap > eps && !side[a.to] {
				side[a.to] = true
				queue = append(queue, a.to)
			}
		}
	}
	return side
}

// validate checks source and sink indices.
func (nw *Network) validate(source, sink int) error {
	if source < 0 || source >= len(nw.adj) {
		return ErrSourceNotFound
	}
	if sink < 0 || sink >= len(nw.adj) {
		return ErrSinkNotFound
	}
	if source == sink {
		return ErrSourceIsSink
	}
	return nil
}
