package equilibrium

import (
	"fmt"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/mip"
)

// varKind tags the role of a decision variable.
type varKind uint8

const (
	kindAction1  varKind = iota // period-1 action of a vertex
	kindAction2                 // period-2 action of a vertex in one scenario
	kindSpatial1                // period-1 disagreement on an edge
	kindSpatial2                // period-2 disagreement on an edge in one scenario
	kindTemporal                // period-1 vs period-2 disagreement of a vertex in one scenario
)

var kindNames = [...]string{"x1", "x2", "d1", "d2", "t"}

// noScenario marks period-1 variables.
const noScenario = -1

// varKey identifies a variable by role, vertex or canonical edge, and scenario.
type varKey struct {
	kind     varKind
	from, to string // to is empty for vertex variables
	scenario int
}

func (k varKey) String() string {
	name := kindNames[k.kind] + "[" + k.from
	if k.to != "" {
		name += "," + k.to
	}
	if k.scenario != noScenario {
		name += fmt.Sprintf(";%d", k.scenario)
	}
	return name + "]"
}

// formulation is the sample-average program on one graph with its variable
// dictionary.
type formulation struct {
	model     *mip.Model
	vars      map[varKey]mip.Var
	vertices  []string
	scenarios int
}

func (f *formulation) add(k varKey) mip.Var {
	v := f.model.AddBinary(k.String())
	f.vars[k] = v
	return v
}

// disagreement adds the indicator d with d ≥ a − b and d ≥ b − a.
func (f *formulation) disagreement(d, a, b mip.Var) error {
	name := f.model.VarName(d)
	if err := f.model.AddConstraint(name+"+", mip.NewExpr().Add(d, 1).Add(a, -1).Add(b, 1), mip.GreaterEq, 0); err != nil {
		return err
	}
	return f.model.AddConstraint(name+"-", mip.NewExpr().Add(d, 1).Add(b, -1).Add(a, 1), mip.GreaterEq, 0)
}

// buildSAA formulates
//
//	max  Σ_v NR1_v·x1_v + c·Σ_e (1 − d1_e)
//	   + (1/S)·Σ_s [ Σ_v NR2_{s,v}·x2_{s,v} + c·Σ_e (1 − d2_{s,e}) + c·Σ_v (1 − t_{s,v}) ]
//
// over binary x1, x2, d1, d2, t, with every indicator bounded below by both
// signed differences of the two actions it covers. Inputs must be validated.
func buildSAA(g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64) (*formulation, error) {
	vertices := g.Vertices()
	edges := g.Edges()
	S := len(nr2s)
	w := 1 / float64(S)

	f := &formulation{
		model:     mip.NewModel("saa"),
		vars:      make(map[varKey]mip.Var, (len(vertices)+len(edges))*(2*S+1)),
		vertices:  vertices,
		scenarios: S,
	}
	obj := mip.NewExpr()

	x1 := make(map[string]mip.Var, len(vertices))
	for _, v := range vertices {
		x1[v] = f.add(varKey{kind: kindAction1, from: v, scenario: noScenario})
		obj.Add(x1[v], nr1[v])
	}
	for _, e := range edges {
		d := f.add(varKey{kind: kindSpatial1, from: e.From, to: e.To, scenario: noScenario})
		if err := f.disagreement(d, x1[e.From], x1[e.To]); err != nil {
			return nil, err
		}
		obj.Add(d, -c).AddConstant(c)
	}

	for s, nr2 := range nr2s {
		x2 := make(map[string]mip.Var, len(vertices))
		for _, v := range vertices {
			x2[v] = f.add(varKey{kind: kindAction2, from: v, scenario: s})
			obj.Add(x2[v], w*nr2[v])
		}
		for _, e := range edges {
			d := f.add(varKey{kind: kindSpatial2, from: e.From, to: e.To, scenario: s})
			if err := f.disagreement(d, x2[e.From], x2[e.To]); err != nil {
				return nil, err
			}
			obj.Add(d, -w*c).AddConstant(w * c)
		}
		for _, v := range vertices {
			t := f.add(varKey{kind: kindTemporal, from: v, scenario: s})
			if err := f.disagreement(t, x1[v], x2[v]); err != nil {
				return nil, err
			}
			obj.Add(t, -w*c).AddConstant(w * c)
		}
	}

	if err := f.model.SetObjective(obj, mip.Maximize); err != nil {
		return nil, err
	}
	return f, nil
}

// action reads the value of a vertex action variable.
func (f *formulation) action(sol *mip.Solution, kind varKind, v string, s int) game.Action {
	return game.ActionOf(sol.Value(f.vars[varKey{kind: kind, from: v, scenario: s}]))
}

// extract converts a backend solution into a Result.
func (f *formulation) extract(sol *mip.Solution) *Result {
	res := &Result{
		Period1:   make(game.Profile, len(f.vertices)),
		Period2:   make([]game.Profile, f.scenarios),
		Objective: sol.Objective,
		Method:    sol.Method,
	}
	for _, v := range f.vertices {
		res.Period1[v] = f.action(sol, kindAction1, v, noScenario)
	}
	for s := range res.Period2 {
		p := make(game.Profile, len(f.vertices))
		for _, v := range f.vertices {
			p[v] = f.action(sol, kindAction2, v, s)
		}
		res.Period2[s] = p
	}
	return res
}
