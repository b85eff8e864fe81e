package bfs

import (
	"fmt"

	"github.com/katalvlaran/coordgame/core"
)

// Eccentricity returns the largest hop distance from v to any vertex of g.
// Returns ErrDisconnected if some vertex is unreachable from v.
func Eccentricity(g *core.Graph, v string, opts ...Option) (int, error) {
	res, err := BFS(g, v, opts...)
	if err != nil {
		return 0, err
	}
	if len(res.Order) != g.VertexCount() {
		return 0, fmt.Errorf("%w: %d of %d vertices reachable from %q",
			ErrDisconnected, len(res.Order), g.VertexCount(), v)
	}

	return res.MaxDepth(), nil
}

// Diameter returns the largest eccentricity over all vertices of g, i.e. the
// longest shortest path in hops. A single-vertex graph has diameter 0.
//
// Errors: ErrGraphNil, ErrEmptyGraph, ErrDisconnected, ctx.Err() via WithContext.
func Diameter(g *core.Graph, opts ...Option) (int, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return 0, ErrEmptyGraph
	}

	diameter := 0
	for _, v := range vertices {
		ecc, err := Eccentricity(g, v, opts...)
		if err != nil {
			return 0, fmt.Errorf("Diameter: %w", err)
		}
		if ecc > diameter {
			diameter = ecc
		}
	}

	return diameter, nil
}

// Connected reports whether every vertex of g is reachable from every other.
// The empty graph is considered connected.
func Connected(g *core.Graph) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return true, nil
	}
	res, err := BFS(g, vertices[0])
	if err != nil {
		return false, err
	}

	return len(res.Order) == len(vertices), nil
}
