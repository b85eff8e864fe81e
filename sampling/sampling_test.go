package sampling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/sampling"
)

func triangle(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"0", "1"}, {"1", "2"}, {"0", "2"}} {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	return g
}

func TestBundle_ReproducibleAndInRange(t *testing.T) {
	g := triangle(t)
	s := sampling.Default()
	counts := sampling.Counts{Instances: 3, SolveScenarios: 20, EvalScenarios: 7}

	a, err := s.Bundle(g, counts)
	require.NoError(t, err)
	b, err := s.Bundle(g, counts)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.Len(t, a.NR1s, 3)
	assert.Len(t, a.SolveScenarios, 20)
	assert.Len(t, a.EvalScenarios, 7)
	for _, r := range append(append(a.NR1s, a.SolveScenarios...), a.EvalScenarios...) {
		require.Len(t, r, 3)
		for _, v := range r {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestDraw_StreamsIndependent(t *testing.T) {
	g := triangle(t)
	s := sampling.Default()

	solve, err := s.Draw(g, sampling.KindSolve, 5)
	require.NoError(t, err)
	eval, err := s.Draw(g, sampling.KindEval, 5)
	require.NoError(t, err)
	assert.NotEqual(t, solve, eval, "solve and eval scenarios must differ")

	// a longer draw extends, not reshuffles, the same stream
	longer, err := s.Draw(g, sampling.KindSolve, 8)
	require.NoError(t, err)
	assert.Equal(t, solve, longer[:5])

	other := s
	other.Seed++
	moved, err := other.Draw(g, sampling.KindSolve, 5)
	require.NoError(t, err)
	assert.NotEqual(t, solve, moved)
}

func TestSampler_Errors(t *testing.T) {
	g := triangle(t)
	_, err := sampling.Sampler{Low: 1, High: 1}.Draw(g, sampling.KindNR1, 1)
	require.ErrorIs(t, err, sampling.ErrInvalidRange)
	_, err = sampling.Sampler{Low: math.Inf(-1), High: 1}.Draw(g, sampling.KindNR1, 1)
	require.ErrorIs(t, err, sampling.ErrInvalidRange)
	_, err = sampling.Default().Draw(g, sampling.KindNR1, 0)
	require.ErrorIs(t, err, sampling.ErrInvalidCount)
	_, err = sampling.Default().Bundle(g, sampling.Counts{Instances: 1, SolveScenarios: 1})
	require.ErrorIs(t, err, sampling.ErrInvalidCount)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "nr1", sampling.KindNR1.String())
	assert.Equal(t, "solve", sampling.KindSolve.String())
	assert.Equal(t, "eval", sampling.KindEval.String())
	assert.Equal(t, sampling.DefaultCounts(), sampling.Counts{Instances: 10, SolveScenarios: 100, EvalScenarios: 30})
}
