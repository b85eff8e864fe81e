// SPDX-License-Identifier: MIT

package core_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/core"
)

// cycle builds the n-vertex cycle 0-1-...-(n-1)-0.
func cycle(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		_, err := g.AddEdge(itoa(i), itoa((i+1)%n))
		require.NoError(t, err)
	}
	return g
}

func itoa(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return digits[i : i+1]
	}
	return itoa(i/10) + digits[i%10:i%10+1]
}

func TestAddVertex_Errors(t *testing.T) {
	g := core.NewGraph()
	require.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("A"), "AddVertex must be idempotent")
	assert.Equal(t, 1, g.VertexCount())
	assert.False(t, g.HasVertex(""))
}

func TestAddEdge_Errors(t *testing.T) {
	g := core.NewGraph()

	_, err := g.AddEdge("", "B")
	require.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = g.AddEdge("A", "A")
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)

	_, err = g.AddEdge("A", "B")
	require.NoError(t, err)
	_, err = g.AddEdge("B", "A")
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed, "reverse orientation is the same undirected edge")
	assert.Equal(t, 1, g.EdgeCount())
}

func TestEdges_Canonical(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("10", "2")
	require.NoError(t, err)
	_, err = g.AddEdge("b", "a")
	require.NoError(t, err)

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, "2", edges[0].From)
	assert.Equal(t, "10", edges[0].To)
	assert.Equal(t, "a", edges[1].From)
	assert.Equal(t, "b", edges[1].To)

	assert.True(t, g.HasEdge("2", "10"))
	assert.True(t, g.HasEdge("10", "2"))
}

func TestVertices_NaturalOrder(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"10", "x", "2", "1", "07", "7"} {
		require.NoError(t, g.AddVertex(id))
	}
	assert.Equal(t, []string{"1", "2", "07", "7", "10", "x"}, g.Vertices())
}

func TestNeighborIDsAndDegree(t *testing.T) {
	g := cycle(t, 5)

	nbrs, err := g.NeighborIDs("0")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, nbrs)

	d, err := g.Degree("3")
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = g.NeighborIDs("missing")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.Degree("missing")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestInducedSubgraph(t *testing.T) {
	g := cycle(t, 6)
	sub := core.InducedSubgraph(g, map[string]bool{"0": true, "1": true, "2": true, "4": true, "missing": true})

	assert.Equal(t, []string{"0", "1", "2", "4"}, sub.Vertices())
	assert.Equal(t, 2, sub.EdgeCount())
	assert.True(t, sub.HasEdge("0", "1"))
	assert.True(t, sub.HasEdge("1", "2"))
	assert.False(t, sub.HasEdge("4", "5"))

	// source untouched
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 6, g.EdgeCount())
}

func TestEdgeList_RoundTrip(t *testing.T) {
	in := strings.Join([]string{
		"# 3-vertex path plus an isolated vertex",
		"0 1 {}",
		"1 2",
		"",
		"9",
	}, "\n")
	g, err := core.ReadEdgeList(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "9"}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())

	var sb strings.Builder
	require.NoError(t, core.WriteEdgeList(&sb, g))
	assert.Equal(t, "9\n0 1\n1 2\n", sb.String())

	_, err = core.ReadEdgeList(strings.NewReader("1 1\n"))
	require.ErrorIs(t, err, core.ErrBadEdgeList)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)

	_, err = core.ReadEdgeList(strings.NewReader("1 2\n2 1\n"))
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
}

func TestConcurrentReads(t *testing.T) {
	g := cycle(t, 32)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range g.Vertices() {
				if _, err := g.NeighborIDs(id); err != nil {
					errs <- err
					return
				}
			}
			_ = g.Edges()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
