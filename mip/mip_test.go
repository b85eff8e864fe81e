// SPDX-License-Identifier: MIT

package mip_test

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/mip"
)

// bruteForce returns the best objective over all feasible 0/1 points, and
// false if none is feasible.
func bruteForce(m *mip.Model) (float64, bool) {
	n := m.NumVars()
	best, found := math.Inf(-1), false
	vals := make([]float64, n)
	for mask := 0; mask < 1<<n; mask++ {
		for j := 0; j < n; j++ {
			vals[j] = float64(mask >> j & 1)
		}
		if !m.Feasible(vals, 1e-9) {
			continue
		}
		if v := m.ObjectiveValue(vals); v > best {
			best, found = v, true
		}
	}
	return best, found
}

// randomModel builds a random knapsack-style model with mixed senses.
func randomModel(rng *rand.Rand, n, rows int) *mip.Model {
	m := mip.NewModel("random")
	vars := make([]mip.Var, n)
	for j := range vars {
		vars[j] = m.AddBinary(fmt.Sprintf("x%d", j))
	}
	obj := mip.NewExpr()
	for _, v := range vars {
		obj.Add(v, math.Round((rng.Float64()*10-3)*100)/100)
	}
	_ = m.SetObjective(obj, mip.Maximize)
	for r := 0; r < rows; r++ {
		e := mip.NewExpr()
		var sum float64
		for _, v := range vars {
			if rng.IntN(2) == 0 {
				w := float64(1 + rng.IntN(5))
				e.Add(v, w)
				sum += w
			}
		}
		_ = m.AddConstraint(fmt.Sprintf("cap%d", r), e, mip.LessEq, math.Floor(sum/2))
	}
	return m
}

// randomPairwise builds an agreement program on a random graph: unary
// rewards plus penalized disagreement indicators, some against constants.
func randomPairwise(rng *rand.Rand, n int) *mip.Model {
	m := mip.NewModel("pairwise")
	x := make([]mip.Var, n)
	obj := mip.NewExpr()
	for i := range x {
		x[i] = m.AddBinary(fmt.Sprintf("x%d", i))
		obj.Add(x[i], rng.Float64()*2-1)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.IntN(3) != 0 {
				continue
			}
			d := m.AddBinary(fmt.Sprintf("d%d_%d", i, j))
			_ = m.AddConstraint("", mip.NewExpr().Add(d, 1).Add(x[i], -1).Add(x[j], 1), mip.GreaterEq, 0)
			_ = m.AddConstraint("", mip.NewExpr().Add(d, 1).Add(x[j], -1).Add(x[i], 1), mip.GreaterEq, 0)
			obj.Add(d, -rng.Float64()).AddConstant(0.25)
		}
	}
	// temporal-style indicators against a constant
	for i := 0; i < n; i++ {
		if rng.IntN(2) == 0 {
			continue
		}
		k := float64(rng.IntN(2))
		t := m.AddBinary(fmt.Sprintf("t%d", i))
		_ = m.AddConstraint("", mip.NewExpr().Add(t, 1).Add(x[i], -1), mip.GreaterEq, -k)
		_ = m.AddConstraint("", mip.NewExpr().Add(t, 1).Add(x[i], 1), mip.GreaterEq, k)
		obj.Add(t, -0.5*rng.Float64())
	}
	_ = m.SetObjective(obj, mip.Maximize)
	return m
}

func TestSolve_SmallKnapsack(t *testing.T) {
	m := mip.NewModel("knapsack")
	a, b, c := m.AddBinary("a"), m.AddBinary("b"), m.AddBinary("c")
	require.NoError(t, m.SetObjective(mip.NewExpr().Add(a, 5).Add(b, 4).Add(c, 3), mip.Maximize))
	require.NoError(t, m.AddConstraint("w", mip.NewExpr().Add(a, 2).Add(b, 3).Add(c, 1), mip.LessEq, 4))

	for _, method := range []mip.Method{mip.Auto, mip.BranchAndBound} {
		sol, err := mip.Solve(context.Background(), m, mip.WithMethod(method))
		require.NoError(t, err, method)
		assert.InDelta(t, 8.0, sol.Objective, 1e-9)
		assert.True(t, sol.Bool(a))
		assert.False(t, sol.Bool(b))
		assert.True(t, sol.Bool(c))
		assert.Equal(t, mip.BranchAndBound, sol.Method)
	}
}

func TestSolve_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 40; trial++ {
		m := randomModel(rng, 3+rng.IntN(8), 1+rng.IntN(4))
		want, ok := bruteForce(m)
		require.True(t, ok, "x = 0 is always feasible")

		for _, lp := range []bool{true, false} {
			sol, err := mip.Solve(context.Background(), m, mip.WithLPRelaxation(lp, 0))
			require.NoError(t, err)
			assert.InDelta(t, want, sol.Objective, 1e-6, "trial %d lp=%v", trial, lp)
			assert.True(t, m.Feasible(sol.Values, 1e-9))
		}
	}
}

func TestSolve_PairwiseMinCutMatchesBranchAndBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 30; trial++ {
		m := randomPairwise(rng, 2+rng.IntN(5))

		cut, err := mip.Solve(context.Background(), m, mip.WithMethod(mip.MinCut))
		require.NoError(t, err)
		assert.Equal(t, mip.MinCut, cut.Method)

		bb, err := mip.Solve(context.Background(), m, mip.WithMethod(mip.BranchAndBound))
		require.NoError(t, err)
		assert.InDelta(t, bb.Objective, cut.Objective, 1e-9, "trial %d", trial)

		if m.NumVars() <= 16 {
			want, _ := bruteForce(m)
			assert.InDelta(t, want, cut.Objective, 1e-9, "trial %d", trial)
		}

		auto, err := mip.Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, mip.MinCut, auto.Method)
		assert.Equal(t, cut.Values, auto.Values, "deterministic")
	}
}

func TestSolve_Minimize(t *testing.T) {
	m := mip.NewModel("cover")
	a, b := m.AddBinary("a"), m.AddBinary("b")
	require.NoError(t, m.SetObjective(mip.NewExpr().Add(a, 3).Add(b, 2).AddConstant(1), mip.Minimize))
	require.NoError(t, m.AddConstraint("cover", mip.NewExpr().Add(a, 1).Add(b, 1), mip.GreaterEq, 1))

	sol, err := mip.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sol.Objective, 1e-9)
	assert.Equal(t, []float64{0, 1}, sol.Values)
}

func TestSolve_Equality(t *testing.T) {
	m := mip.NewModel("eq")
	x := []mip.Var{m.AddBinary("a"), m.AddBinary("b"), m.AddBinary("c")}
	obj := mip.NewExpr().Add(x[0], 1).Add(x[1], 2).Add(x[2], 3)
	require.NoError(t, m.SetObjective(obj, mip.Maximize))
	require.NoError(t, m.AddConstraint("two", mip.NewExpr().Add(x[0], 1).Add(x[1], 1).Add(x[2], 1), mip.Equal, 2))

	sol, err := mip.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, sol.Objective, 1e-9)
	assert.Equal(t, []float64{0, 1, 1}, sol.Values)
}

func TestSolve_Infeasible(t *testing.T) {
	m := mip.NewModel("bad")
	a, b := m.AddBinary("a"), m.AddBinary("b")
	require.NoError(t, m.AddConstraint("ge", mip.NewExpr().Add(a, 1).Add(b, 1), mip.GreaterEq, 3))

	for _, lp := range []bool{true, false} {
		_, err := mip.Solve(context.Background(), m, mip.WithLPRelaxation(lp, 0))
		require.ErrorIs(t, err, mip.ErrInfeasible)
	}
}

func TestSolve_NodeLimit(t *testing.T) {
	m := mip.NewModel("triangle")
	x := []mip.Var{m.AddBinary("a"), m.AddBinary("b"), m.AddBinary("c")}
	require.NoError(t, m.SetObjective(mip.NewExpr().Add(x[0], 1).Add(x[1], 1).Add(x[2], 1), mip.Maximize))
	for i := 0; i < 3; i++ {
		e := mip.NewExpr().Add(x[i], 1).Add(x[(i+1)%3], 1)
		require.NoError(t, m.AddConstraint("", e, mip.LessEq, 1))
	}

	_, err := mip.Solve(context.Background(), m, mip.WithNodeLimit(1))
	require.ErrorIs(t, err, mip.ErrSolverFailure)

	sol, err := mip.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sol.Objective, 1e-9)
	assert.Greater(t, sol.Nodes, 1)
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := randomModel(rand.New(rand.NewPCG(5, 6)), 4, 1)
	_, err := mip.Solve(ctx, m, mip.WithMethod(mip.BranchAndBound))
	require.ErrorIs(t, err, mip.ErrSolverFailure)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolve_NotPairwise(t *testing.T) {
	m := randomModel(rand.New(rand.NewPCG(7, 8)), 4, 2)
	_, err := mip.Solve(context.Background(), m, mip.WithMethod(mip.MinCut))
	require.ErrorIs(t, err, mip.ErrNotPairwise)
}

func TestModel_InvalidInput(t *testing.T) {
	m := mip.NewModel("invalid")
	a := m.AddBinary("a")
	require.ErrorIs(t, m.AddConstraint("", mip.NewExpr().Add(a+5, 1), mip.LessEq, 1), mip.ErrInvalidModel)
	require.ErrorIs(t, m.AddConstraint("", mip.NewExpr().Add(a, math.NaN()), mip.LessEq, 1), mip.ErrInvalidModel)
	require.ErrorIs(t, m.AddConstraint("", mip.NewExpr().Add(a, 1), mip.LessEq, math.Inf(1)), mip.ErrInvalidModel)
	require.ErrorIs(t, m.AddConstraint("", nil, mip.LessEq, 1), mip.ErrInvalidModel)
	require.ErrorIs(t, m.SetObjective(mip.NewExpr().Add(a, 1), mip.Direction(9)), mip.ErrInvalidModel)
	assert.Equal(t, "a", m.VarName(a))
	assert.Equal(t, "", m.VarName(a+1))

	_, err := mip.Solve(context.Background(), nil)
	require.ErrorIs(t, err, mip.ErrInvalidModel)
}

func TestExpr_TermsMerged(t *testing.T) {
	e := mip.NewExpr().Add(2, 1).Add(0, 3).Add(2, -1).Add(1, 2).Add(0, 1).AddConstant(4)
	assert.Equal(t, []mip.Term{{Var: 0, Coef: 4}, {Var: 1, Coef: 2}}, e.Terms())
	assert.Equal(t, 4.0, e.Constant())
}

func TestSolve_EmptyModel(t *testing.T) {
	m := mip.NewModel("empty")
	require.NoError(t, m.SetObjective(mip.NewExpr().AddConstant(2.5), mip.Maximize))
	sol, err := mip.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 2.5, sol.Objective)
	assert.Empty(t, sol.Values)
}
