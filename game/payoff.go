package game

import (
	"fmt"

	"github.com/katalvlaran/coordgame/core"
)

// Payoff1 returns the single-period payoff of profile x on g: the sum of r[v]
// over vertices playing On, plus c for every edge whose endpoints agree.
//
// Errors: ErrInvalidBonus, ErrMissingReward, ErrMissingAction.
// Complexity: O(V + E·log E).
func Payoff1(g *core.Graph, r Rewards, x Profile, c float64) (float64, error) {
	if err := ValidateBonus(c); err != nil {
		return 0, fmt.Errorf("Payoff1: %w", err)
	}
	if err := x.Validate(g); err != nil {
		return 0, fmt.Errorf("Payoff1: %w", err)
	}

	var total float64
	for _, id := range g.Vertices() {
		if x[id] != On {
			continue
		}
		v, ok := r[id]
		if !ok {
			return 0, fmt.Errorf("Payoff1: %w %q", ErrMissingReward, id)
		}
		total += v
	}

	agree, err := Agreements(g, x)
	if err != nil {
		return 0, fmt.Errorf("Payoff1: %w", err)
	}

	return total + c*float64(agree), nil
}

// Agreements counts the edges of g whose two endpoints play the same action.
func Agreements(g *core.Graph, x Profile) (int, error) {
	n := 0
	for _, e := range g.Edges() {
		a, ok := x[e.From]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingAction, e.From)
		}
		b, ok := x[e.To]
		if !ok {
			return 0, fmt.Errorf("%w %q", ErrMissingAction, e.To)
		}
		if a == b {
			n++
		}
	}
	return n, nil
}

// TemporalAgreements counts the vertices of g whose period-1 and period-2
// actions coincide.
func TemporalAgreements(g *core.Graph, x1, x2 Profile) (int, error) {
	n := 0
	for _, id := range g.Vertices() {
		a, ok := x1[id]
		if !ok {
			return 0, fmt.Errorf("%w %q (period 1)", ErrMissingAction, id)
		}
		b, ok := x2[id]
		if !ok {
			return 0, fmt.Errorf("%w %q (period 2)", ErrMissingAction, id)
		}
		if a == b {
			n++
		}
	}
	return n, nil
}

// Continuation2 returns the period-2 payoff of x2 under r given the fixed
// period-1 profile x1: Payoff1(g, r, x2, c) plus c per temporally agreeing vertex.
func Continuation2(g *core.Graph, r Rewards, x1, x2 Profile, c float64) (float64, error) {
	p, err := Payoff1(g, r, x2, c)
	if err != nil {
		return 0, err
	}
	t, err := TemporalAgreements(g, x1, x2)
	if err != nil {
		return 0, fmt.Errorf("Continuation2: %w", err)
	}
	return p + c*float64(t), nil
}

// Expected returns the sample-average approximation of the two-period payoff
// of (x1, x2s) under nr1 and the scenario set nr2s, where x2s[s] is the
// period-2 response to scenario s. Every scenario has weight 1/len(nr2s).
func Expected(g *core.Graph, nr1 Rewards, nr2s Scenarios, x1 Profile, x2s []Profile, c float64) (float64, error) {
	if len(nr2s) == 0 {
		return 0, ErrNoScenarios
	}
	if len(x2s) != len(nr2s) {
		return 0, fmt.Errorf("Expected: %d responses for %d scenarios", len(x2s), len(nr2s))
	}
	p1, err := Payoff1(g, nr1, x1, c)
	if err != nil {
		return 0, err
	}
	var sum float64
	for s, r := range nr2s {
		p2, err := Continuation2(g, r, x1, x2s[s], c)
		if err != nil {
			return 0, fmt.Errorf("scenario %d: %w", s, err)
		}
		sum += p2
	}
	return p1 + sum/float64(len(nr2s)), nil
}
