// Package bfs provides breadth-first search over a core.Graph and the two
// locality primitives built on it: L-hop ego-networks and the graph diameter.
//
// # What
//
//   - BFS explores vertices in non-decreasing hop distance from a start
//     vertex and returns a BFSResult with the visit Order and Depth map.
//   - EgoGraph(g, center, radius) returns the induced subgraph on every vertex
//     within radius hops of center, center included. radius 0 yields the
//     single vertex with no edges.
//   - Eccentricity(g, v) and Diameter(g) report the largest hop distance from
//     v, and the largest eccentricity over all vertices.
//
// # Determinism
//
//	core.Graph.NeighborIDs returns sorted IDs and BFS enqueues neighbors in
//	that order, so the visit sequence is fully reproducible.
//
// # Complexity (V = |Vertices|, E = |Edges|)
//
//   - BFS, EgoGraph, Eccentricity: O(V + E) time, O(V) memory.
//   - Diameter: O(V·(V + E)) time (one BFS per vertex).
//
// # Usage
//
//	res, err := bfs.BFS(g, "0", bfs.WithMaxDepth(2))
//	ego, err := bfs.EgoGraph(g, "0", 2)
//	d, err := bfs.Diameter(g)
//
// # Options
//
//   - WithContext(ctx):  set a custom context for cancellation.
//   - WithMaxDepth(d):   do not enqueue vertices deeper than d (d >= 0).
//   - WithOnVisit(fn):   hook during visit; returning error aborts BFS.
//
// # Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      for invalid options (negative depth or radius).
//   - ErrNeighbors            if neighbor lookup fails for any vertex.
//   - ErrEmptyGraph           Diameter of a graph without vertices.
//   - ErrDisconnected         Eccentricity/Diameter of a disconnected graph.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
