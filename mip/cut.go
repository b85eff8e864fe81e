// SPDX-License-Identifier: MIT

package mip

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/coordgame/flow"
)

// indicator is a variable d linked to its operands by the two rows
// d ≥ a − b and d ≥ b − a (pair, b ≥ 0) or d ≥ a − k and d ≥ k − a with a
// constant k ∈ {0, 1} (b < 0). At any optimum with a non-positive objective
// coefficient on d, d = |a − b| (resp. |a − k|).
type indicator struct {
	d, a, b int
	k       float64
}

// pairwise is a model recognized as
//
//	maximize Σ u_i·x_i − Σ w_ab·[x_a ≠ x_b] + K,  w ≥ 0
//
// after eliminating indicators. Such a model is solved exactly by one
// minimum s-t cut.
type pairwise struct {
	indicators []indicator
	isInd      []bool
}

// isUnit reports |v| == 1 up to tol.
func isUnit(v, tol float64) bool { return math.Abs(math.Abs(v)-1) <= tol }

// detectPairwise checks whether every row of p belongs to an indicator pair
// and every indicator is penalized (objective coefficient ≤ 0). It returns
// false for anything else, including models with equality rows.
func detectPairwise(p *problem, tol float64) (*pairwise, bool) {
	if p.hasEq || len(p.rows)%2 != 0 {
		return nil, false
	}
	type group struct{ rows []int }
	groups := make(map[[3]int]*group, len(p.rows)/2)
	var keys [][3]int
	for ri, r := range p.rows {
		if len(r.idx) < 2 || len(r.idx) > 3 {
			return nil, false
		}
		for _, a := range r.coef {
			if !isUnit(a, tol) {
				return nil, false
			}
		}
		key := [3]int{-1, -1, -1}
		copy(key[:], r.idx) // idx is sorted ascending
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.rows = append(g.rows, ri)
	}

	pw := &pairwise{isInd: make([]bool, p.n)}
	operand := make([]bool, p.n)
	for _, key := range keys {
		g := groups[key]
		if len(g.rows) != 2 {
			return nil, false
		}
		ind, ok := matchIndicator(p.rows[g.rows[0]], p.rows[g.rows[1]], tol)
		if !ok || pw.isInd[ind.d] || operand[ind.d] || p.obj[ind.d] > tol {
			return nil, false
		}
		pw.isInd[ind.d] = true
		operand[ind.a] = true
		if ind.b >= 0 {
			operand[ind.b] = true
		}
		pw.indicators = append(pw.indicators, ind)
	}
	for j := 0; j < p.n; j++ {
		if pw.isInd[j] && operand[j] {
			return nil, false
		}
	}
	return pw, true
}

// coefOf returns the coefficient of variable j in r (0 if absent).
func coefOf(r leRow, j int) float64 {
	for k, v := range r.idx {
		if v == j {
			return r.coef[k]
		}
	}
	return 0
}

// matchIndicator recognizes one indicator pair; r1 and r2 share a variable set.
func matchIndicator(r1, r2 leRow, tol float64) (indicator, bool) {
	d := -1
	for _, j := range r1.idx {
		if coefOf(r1, j) < 0 && coefOf(r2, j) < 0 {
			if d >= 0 {
				return indicator{}, false
			}
			d = j
		}
	}
	if d < 0 {
		return indicator{}, false
	}
	var others []int
	for _, j := range r1.idx {
		if j != d {
			others = append(others, j)
		}
	}

	switch len(others) {
	case 2:
		a, b := others[0], others[1]
		// r1: a − b − d ≤ 0 and r2: b − a − d ≤ 0 (in either order)
		if coefOf(r1, a) != -coefOf(r1, b) || coefOf(r2, a) != -coefOf(r2, b) || coefOf(r1, a) != -coefOf(r2, a) {
			return indicator{}, false
		}
		if math.Abs(r1.rhs) > tol || math.Abs(r2.rhs) > tol {
			return indicator{}, false
		}
		return indicator{d: d, a: a, b: b}, true
	case 1:
		a := others[0]
		pos, neg := r1, r2
		if coefOf(r1, a) < 0 {
			pos, neg = r2, r1
		}
		if coefOf(pos, a) < 0 || coefOf(neg, a) > 0 {
			return indicator{}, false
		}
		// pos: a − d ≤ k, neg: −a − d ≤ −k
		k := pos.rhs
		if math.Abs(neg.rhs+k) > tol {
			return indicator{}, false
		}
		switch {
		case math.Abs(k) <= tol:
			k = 0
		case math.Abs(k-1) <= tol:
			k = 1
		default:
			return indicator{}, false
		}
		return indicator{d: d, a: a, b: -1, k: k}, true
	}
	return indicator{}, false
}

// solveCut builds the s-t network of pw and reads the optimal assignment
// from the source side of a minimum cut (x = 1 on the source side).
//
// Unary u_i > 0 becomes s→i with capacity u_i (paid when x_i = 0), u_i < 0
// becomes i→t with capacity −u_i (paid when x_i = 1), and each pair term
// becomes an undirected edge of capacity w between its operands. Among
// minimum cuts the smallest source side is taken, so ties resolve to 0.
func solveCut(ctx context.Context, p *problem, pw *pairwise, o options) ([]int8, error) {
	unary := slices.Clone(p.obj)
	for _, ind := range pw.indicators {
		unary[ind.d] = 0
		if ind.b < 0 {
			// d = a when k = 0, d = 1 − a when k = 1
			if ind.k == 0 {
				unary[ind.a] += p.obj[ind.d]
			} else {
				unary[ind.a] -= p.obj[ind.d]
			}
		}
	}

	s, t := p.n, p.n+1
	nw := flow.NewNetwork(p.n + 2)
	for j, u := range unary {
		if pw.isInd[j] {
			continue
		}
		var err error
		switch {
		case u > 0:
			err = nw.AddArc(s, j, u)
		case u < 0:
			err = nw.AddArc(j, t, -u)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSolverFailure, err)
		}
	}
	for _, ind := range pw.indicators {
		if ind.b < 0 || p.obj[ind.d] == 0 {
			continue
		}
		if err := nw.AddEdge(ind.a, ind.b, -p.obj[ind.d]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSolverFailure, err)
		}
	}

	fo := flow.DefaultOptions()
	fo.Ctx = ctx
	fo.Logger = o.logger
	fo.Epsilon = o.flowEpsilon
	cut, err := flow.Dinic(nw, s, t, fo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}
	o.logger.Debug().Float64("cut", cut).Int("nodes", nw.Nodes()).Msg("minimum cut computed")

	side := nw.SourceSide(s, fo.Epsilon)
	assign := make([]int8, p.n)
	for j := 0; j < p.n; j++ {
		if !pw.isInd[j] && side[j] {
			assign[j] = 1
		}
	}
	for _, ind := range pw.indicators {
		other := int8(ind.k)
		if ind.b >= 0 {
			other = assign[ind.b]
		}
		if assign[ind.a] != other {
			assign[ind.d] = 1
		}
	}
	if !p.feasible(assign, o.tolerance) {
		return nil, fmt.Errorf("%w: cut assignment violates a constraint", ErrSolverFailure)
	}
	return assign, nil
}
