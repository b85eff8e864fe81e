// Package flow implements maximum-flow / minimum-cut algorithms on a compact
// index-based residual Network.
//
// The algorithm offered is Dinic:
//
//   - Method: level graph construction + blocking-flow via DFS.
//   - Time:   O(V²·E); O(E·√V) on unit-capacity networks.
//
// # Network
//
// Nodes are the integers 0..n-1. AddArc(u, v, cap) adds a directed arc and its
// zero-capacity reverse arc; AddEdge adds both directions with the same
// capacity. Capacities are float64 and must be finite and non-negative.
//
// Dinic mutates the network in place, leaving residual capacities.
// After a run, SourceSide(source, eps) returns the source side of a minimum
// s-t cut (the vertices still reachable from the source), which is how binary
// labelling problems read their optimal assignment.
//
// # API
//
//	nw := flow.NewNetwork(4)
//	_ = nw.AddArc(0, 1, 3)
//	...
//	value, err := flow.Dinic(nw, 0, 3, flow.DefaultOptions())
//	side := nw.SourceSide(0, 1e-9)
//
// # Errors
//
//	ErrSourceNotFound / ErrSinkNotFound - index out of range.
//	ErrSourceIsSink                    - source == sink.
//	ErrNodeOutOfRange                  - AddArc with an unknown endpoint.
//	EdgeError                          - negative or non-finite capacity.
//	context.Canceled / context.DeadlineExceeded - if opts.Ctx is canceled.
package flow
