// Package gametest provides exhaustive-enumeration helpers for tests of
// packages built on game.
package gametest

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
)

// MaxVertices is the largest graph Profiles enumerates (2^20 profiles).
const MaxVertices = 20

// Profiles yields all 2^V action profiles of g in binary-counter order over
// the natural vertex order (the first vertex is the least significant bit).
// A yielded Profile is a fresh map the consumer may keep.
//
// Profiles panics if g has more than MaxVertices vertices.
func Profiles(g *core.Graph) iter.Seq[game.Profile] {
	ids := g.Vertices()
	if len(ids) > MaxVertices {
		panic(fmt.Sprintf("gametest: cannot enumerate profiles of %d vertices (max %d)", len(ids), MaxVertices))
	}
	return func(yield func(game.Profile) bool) {
		for mask := uint64(0); mask < 1<<len(ids); mask++ {
			x := make(game.Profile, len(ids))
			for i, id := range ids {
				x[id] = game.Action(mask >> i & 1)
			}
			if !yield(x) {
				return
			}
		}
	}
}

// Uniform returns the profile assigning a to every vertex of g.
func Uniform(g *core.Graph, a game.Action) game.Profile {
	x := make(game.Profile, g.VertexCount())
	for _, id := range g.Vertices() {
		x[id] = a
	}
	return x
}
