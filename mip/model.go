// SPDX-License-Identifier: MIT

package mip

import (
	"fmt"
	"math"
	"slices"
)

// Var is a handle to a binary decision variable of a Model.
type Var int

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Expr is a linear expression Σ coef·var + constant. The zero value is the
// empty expression; Add and AddConstant mutate and return the receiver so
// calls can be chained.
type Expr struct {
	terms    []Term
	constant float64
}

// NewExpr returns an empty expression.
func NewExpr() *Expr { return &Expr{} }

// Add appends coef·v to e.
func (e *Expr) Add(v Var, coef float64) *Expr {
	e.terms = append(e.terms, Term{Var: v, Coef: coef})
	return e
}

// AddConstant adds k to the constant part of e.
func (e *Expr) AddConstant(k float64) *Expr {
	e.constant += k
	return e
}

// Constant returns the constant part of e.
func (e *Expr) Constant() float64 { return e.constant }

// Terms returns the terms of e with duplicate variables merged, zero
// coefficients dropped and variables in ascending order.
func (e *Expr) Terms() []Term {
	out := append([]Term(nil), e.terms...)
	slices.SortStableFunc(out, func(a, b Term) int { return int(a.Var) - int(b.Var) })
	merged := out[:0]
	for _, t := range out {
		if n := len(merged); n > 0 && merged[n-1].Var == t.Var {
			merged[n-1].Coef += t.Coef
			continue
		}
		merged = append(merged, t)
	}
	kept := merged[:0]
	for _, t := range merged {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// Sense is the relation of a linear constraint.
type Sense int

const (
	// LessEq is Σ a·x ≤ b.
	LessEq Sense = iota
	// GreaterEq is Σ a·x ≥ b.
	GreaterEq
	// Equal is Σ a·x = b.
	Equal
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Direction is the optimization direction of the objective.
type Direction int

const (
	// Maximize the objective.
	Maximize Direction = iota
	// Minimize the objective.
	Minimize
)

// constraint is a normalized linear constraint: terms merged and sorted,
// expression constant moved into rhs.
type constraint struct {
	name  string
	terms []Term
	sense Sense
	rhs   float64
}

// Model is a pure binary linear program: every variable is in {0, 1}, every
// constraint is linear, and the objective is linear with a constant term.
// A Model is built by a single goroutine and read-only once passed to Solve.
type Model struct {
	name        string
	vars        []string
	constraints []constraint
	objective   []Term
	objConst    float64
	direction   Direction
}

// NewModel returns an empty model. The name is used in log events only.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// AddBinary adds a binary variable and returns its handle.
func (m *Model) AddBinary(name string) Var {
	m.vars = append(m.vars, name)
	return Var(len(m.vars) - 1)
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// VarName returns the name given to v, or "" if v is unknown.
func (m *Model) VarName(v Var) string {
	if int(v) < 0 || int(v) >= len(m.vars) {
		return ""
	}
	return m.vars[v]
}

// checkTerms validates variable handles and coefficients.
func (m *Model) checkTerms(e *Expr) error {
	if e == nil {
		return fmt.Errorf("%w: nil expression", ErrInvalidModel)
	}
	if math.IsNaN(e.constant) || math.IsInf(e.constant, 0) {
		return fmt.Errorf("%w: non-finite constant %v", ErrInvalidModel, e.constant)
	}
	for _, t := range e.terms {
		if int(t.Var) < 0 || int(t.Var) >= len(m.vars) {
			return fmt.Errorf("%w: unknown variable %d", ErrInvalidModel, t.Var)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return fmt.Errorf("%w: non-finite coefficient %v on %q", ErrInvalidModel, t.Coef, m.vars[t.Var])
		}
	}
	return nil
}

// AddConstraint adds the constraint e (sense) rhs. The constant part of e is
// moved to the right-hand side.
func (m *Model) AddConstraint(name string, e *Expr, sense Sense, rhs float64) error {
	if err := m.checkTerms(e); err != nil {
		return fmt.Errorf("AddConstraint(%q): %w", name, err)
	}
	if sense != LessEq && sense != GreaterEq && sense != Equal {
		return fmt.Errorf("AddConstraint(%q): %w: sense %v", name, ErrInvalidModel, sense)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return fmt.Errorf("AddConstraint(%q): %w: non-finite rhs %v", name, ErrInvalidModel, rhs)
	}
	m.constraints = append(m.constraints, constraint{
		name:  name,
		terms: e.Terms(),
		sense: sense,
		rhs:   rhs - e.constant,
	})
	return nil
}

// SetObjective replaces the objective with e in direction d.
func (m *Model) SetObjective(e *Expr, d Direction) error {
	if err := m.checkTerms(e); err != nil {
		return fmt.Errorf("SetObjective: %w", err)
	}
	if d != Maximize && d != Minimize {
		return fmt.Errorf("SetObjective: %w: direction %d", ErrInvalidModel, d)
	}
	m.objective = e.Terms()
	m.objConst = e.constant
	m.direction = d
	return nil
}

// ObjectiveValue evaluates the objective (in the model's own direction) at
// values, indexed by Var.
func (m *Model) ObjectiveValue(values []float64) float64 {
	v := m.objConst
	for _, t := range m.objective {
		v += t.Coef * values[t.Var]
	}
	return v
}

// Feasible reports whether values satisfies every constraint within tol.
func (m *Model) Feasible(values []float64, tol float64) bool {
	for _, c := range m.constraints {
		var act float64
		for _, t := range c.terms {
			act += t.Coef * values[t.Var]
		}
		switch c.sense {
		case LessEq:
			if act > c.rhs+tol {
				return false
			}
		case GreaterEq:
			if act < c.rhs-tol {
				return false
			}
		case Equal:
			if math.Abs(act-c.rhs) > tol {
				return false
			}
		}
	}
	return true
}
