package bfs_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/bfs"
	"github.com/katalvlaran/coordgame/core"
)

// path builds the n-vertex path 0-1-...-(n-1).
func path(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("0"))
	for i := 1; i < n; i++ {
		_, err := g.AddEdge(strconv.Itoa(i-1), strconv.Itoa(i))
		require.NoError(t, err)
	}
	return g
}

// cycle builds the n-vertex cycle 0-1-...-(n-1)-0.
func cycle(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		_, err := g.AddEdge(strconv.Itoa(i), strconv.Itoa((i+1)%n))
		require.NoError(t, err)
	}
	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "0")
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := path(t, 3)
	_, err = bfs.BFS(g, "missing")
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)

	_, err = bfs.BFS(g, "0", bfs.WithMaxDepth(-2))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_OrderDepth(t *testing.T) {
	g := cycle(t, 6)
	res, err := bfs.BFS(g, "0")
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1", "5", "2", "4", "3"}, res.Order)
	assert.Equal(t, map[string]int{"0": 0, "1": 1, "5": 1, "2": 2, "4": 2, "3": 3}, res.Depth)
	assert.Equal(t, 3, res.MaxDepth())
}

func TestBFS_MaxDepth(t *testing.T) {
	g := path(t, 5)
	res, err := bfs.BFS(g, "0", bfs.WithMaxDepth(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, res.Order)
	assert.NotContains(t, res.Depth, "4")

	res, err = bfs.BFS(g, "2", bfs.WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, res.Order)
}

func TestBFS_OnVisitAbort(t *testing.T) {
	stop := errors.New("stop")
	g := path(t, 4)
	var seen []string
	_, err := bfs.BFS(g, "0", bfs.WithOnVisit(func(id string, _ int) error {
		seen = append(seen, id)
		if id == "1" {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"0", "1"}, seen)
}

func TestBFS_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bfs.BFS(path(t, 3), "0", bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestEgoGraph(t *testing.T) {
	g := cycle(t, 8)

	ego, err := bfs.EgoGraph(g, "0", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, ego.Vertices())
	assert.Equal(t, 0, ego.EdgeCount())

	ego, err = bfs.EgoGraph(g, "0", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "6", "7"}, ego.Vertices())
	assert.Equal(t, 4, ego.EdgeCount())
	assert.False(t, ego.HasEdge("2", "6"))

	// Radius at the eccentricity closes the cycle.
	ego, err = bfs.EgoGraph(g, "0", 4)
	require.NoError(t, err)
	assert.Equal(t, 8, ego.VertexCount())
	assert.Equal(t, 8, ego.EdgeCount())

	// Input untouched.
	assert.Equal(t, 8, g.EdgeCount())
}

func TestEgoGraph_InducedKeepsChords(t *testing.T) {
	g := cycle(t, 4)
	_, err := g.AddEdge("1", "3")
	require.NoError(t, err)

	ego, err := bfs.EgoGraph(g, "0", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "3"}, ego.Vertices())
	assert.True(t, ego.HasEdge("1", "3"), "edges between neighbors belong to the ego-network")
}

func TestEgoGraph_Errors(t *testing.T) {
	g := path(t, 3)
	_, err := bfs.EgoGraph(g, "0", -1)
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
	_, err = bfs.EgoGraph(g, "x", 1)
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)
	_, err = bfs.EgoGraph(nil, "0", 1)
	require.ErrorIs(t, err, bfs.ErrGraphNil)
}

func TestDiameter(t *testing.T) {
	tests := []struct {
		name string
		g    *core.Graph
		want int
	}{
		{"single", path(t, 1), 0},
		{"path5", path(t, 5), 4},
		{"cycle7", cycle(t, 7), 3},
		{"cycle8", cycle(t, 8), 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := bfs.Diameter(tc.g)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestDiameter_Errors(t *testing.T) {
	_, err := bfs.Diameter(core.NewGraph())
	require.ErrorIs(t, err, bfs.ErrEmptyGraph)

	g := path(t, 3)
	require.NoError(t, g.AddVertex("9"))
	_, err = bfs.Diameter(g)
	require.ErrorIs(t, err, bfs.ErrDisconnected)

	ok, err := bfs.Connected(g)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = bfs.Connected(cycle(t, 5))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEccentricity(t *testing.T) {
	g := path(t, 5)
	e, err := bfs.Eccentricity(g, "2")
	require.NoError(t, err)
	assert.Equal(t, 2, e)
	e, err = bfs.Eccentricity(g, "0")
	require.NoError(t, err)
	assert.Equal(t, 4, e)
}
