package bfs

import (
	"fmt"

	"github.com/katalvlaran/coordgame/core"
)

// EgoGraph returns the ego-network of center with the given hop radius: the
// subgraph of g induced by every vertex at distance <= radius from center,
// center included. The result is a fresh graph; g is not mutated.
//
// radius 0 yields {center} with no edges. A radius at or above the
// eccentricity of center yields center's whole connected component.
//
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation (radius < 0).
func EgoGraph(g *core.Graph, center string, radius int, opts ...Option) (*core.Graph, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius cannot be negative (%d)", ErrOptionViolation, radius)
	}
	res, err := BFS(g, center, append(opts, WithMaxDepth(radius))...)
	if err != nil {
		return nil, fmt.Errorf("EgoGraph(%q, %d): %w", center, radius, err)
	}

	keep := make(map[string]bool, len(res.Order))
	for _, id := range res.Order {
		keep[id] = true
	}

	return core.InducedSubgraph(g, keep), nil
}
