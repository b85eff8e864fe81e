package game_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/game/gametest"
)

func cycle(t *testing.T, n int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		_, err := g.AddEdge(strconv.Itoa(i), strconv.Itoa((i+1)%n))
		require.NoError(t, err)
	}
	return g
}

func TestPayoff1_Cycle(t *testing.T) {
	g := cycle(t, 4)
	nr1 := game.Rewards{"0": 1, "1": -1, "2": 1, "3": -1}

	tests := []struct {
		name string
		x    game.Profile
		want float64
	}{
		{"all off", game.Profile{"0": 0, "1": 0, "2": 0, "3": 0}, 4 * 0.5},
		{"all on", game.Profile{"0": 1, "1": 1, "2": 1, "3": 1}, 0 + 4*0.5},
		{"alternating", game.Profile{"0": 1, "1": 0, "2": 1, "3": 0}, 2},
		{"one on", game.Profile{"0": 1, "1": 0, "2": 0, "3": 0}, 1 + 2*0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := game.Payoff1(g, nr1, tc.x, 0.5)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestPayoff1_IsolatedVertex(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))

	got, err := game.Payoff1(g, game.Rewards{"a": 2.5, "b": -1}, game.Profile{"a": 1, "b": 1}, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-12)
}

func TestPayoff1_EndpointOrderInvariant(t *testing.T) {
	forward := core.NewGraph()
	backward := core.NewGraph()
	pairs := [][2]string{{"0", "1"}, {"1", "2"}, {"2", "3"}, {"0", "3"}, {"1", "3"}}
	for _, p := range pairs {
		_, err := forward.AddEdge(p[0], p[1])
		require.NoError(t, err)
		_, err = backward.AddEdge(p[1], p[0])
		require.NoError(t, err)
	}
	nr1 := game.Rewards{"0": 0.3, "1": -0.7, "2": 0.1, "3": 0.9}

	for x := range gametest.Profiles(forward) {
		a, err := game.Payoff1(forward, nr1, x, 0.4)
		require.NoError(t, err)
		b, err := game.Payoff1(backward, nr1, x, 0.4)
		require.NoError(t, err)
		assert.Equal(t, a, b, "profile %s", x)
	}
}

func TestPayoff1_Errors(t *testing.T) {
	g := cycle(t, 3)
	x := gametest.Uniform(g, game.On)
	nr1 := game.Rewards{"0": 1, "1": 1, "2": 1}

	_, err := game.Payoff1(g, nr1, x, -0.1)
	require.ErrorIs(t, err, game.ErrInvalidBonus)
	_, err = game.Payoff1(g, nr1, x, math.NaN())
	require.ErrorIs(t, err, game.ErrInvalidBonus)

	_, err = game.Payoff1(g, game.Rewards{"0": 1, "1": 1}, x, 0)
	require.ErrorIs(t, err, game.ErrMissingReward)

	_, err = game.Payoff1(g, nr1, game.Profile{"0": 1, "1": 1}, 0)
	require.ErrorIs(t, err, game.ErrMissingAction)

	_, err = game.Payoff1(g, nr1, game.Profile{"0": 1, "1": 1, "2": 7}, 0)
	require.ErrorIs(t, err, game.ErrInvalidAction)
}

func TestPayoff1_OffVertexNeedsNoReward(t *testing.T) {
	g := cycle(t, 3)
	got, err := game.Payoff1(g, game.Rewards{"0": 2}, game.Profile{"0": 1, "1": 0, "2": 0}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)
}

func TestAgreements(t *testing.T) {
	g := cycle(t, 5)
	n, err := game.Agreements(g, game.Profile{"0": 1, "1": 1, "2": 0, "3": 0, "4": 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = game.TemporalAgreements(g,
		game.Profile{"0": 1, "1": 1, "2": 0, "3": 0, "4": 1},
		game.Profile{"0": 1, "1": 0, "2": 0, "3": 1, "4": 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestExpected(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("a", "b")
	require.NoError(t, err)

	nr1 := game.Rewards{"a": 1, "b": -1}
	nr2s := game.Scenarios{{"a": 2, "b": 0}, {"a": -2, "b": 1}}
	x1 := game.Profile{"a": 1, "b": 0}
	x2s := []game.Profile{{"a": 1, "b": 1}, {"a": 0, "b": 1}}

	// p1 = 1; s0 = 2 + 0 + c(1) + c(1: a agrees) = 2 + 2c; s1 = 1 + 0 + 0 = 1.
	got, err := game.Expected(g, nr1, nr2s, x1, x2s, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1+(3.0+1.0)/2, got, 1e-12)

	_, err = game.Expected(g, nr1, nil, x1, nil, 0.5)
	require.ErrorIs(t, err, game.ErrNoScenarios)
}

func TestRestrictAndValidate(t *testing.T) {
	g := cycle(t, 4)
	sub := core.InducedSubgraph(g, map[string]bool{"0": true, "1": true})

	r := game.Rewards{"0": 1, "1": 2, "2": 3, "3": 4}
	assert.Equal(t, game.Rewards{"0": 1, "1": 2}, r.Restrict(sub))

	s := game.Scenarios{r, r}
	require.NoError(t, s.Restrict(sub).Validate(sub))
	require.ErrorIs(t, game.Scenarios{}.Validate(sub), game.ErrNoScenarios)
	require.ErrorIs(t, game.Scenarios{{"0": 1}}.Validate(sub), game.ErrMissingReward)

	x := gametest.Uniform(g, game.On)
	assert.Equal(t, []string{"0", "1"}, x.Restrict(sub).Ones())
}
