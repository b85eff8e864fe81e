// SPDX-License-Identifier: MIT

package mip

// leRow is a constraint in Σ coef·x ≤ rhs form.
type leRow struct {
	idx  []int
	coef []float64
	rhs  float64
}

// problem is the compiled, maximization form of a Model shared by every
// solve method. Constraints are rewritten as ≤ rows: ≥ rows are negated and
// equalities become two opposite rows.
type problem struct {
	n       int
	obj     []float64
	konst   float64
	rows    []leRow
	varRows [][]int
	hasEq   bool
}

// compile lowers m into maximization form.
func compile(m *Model) *problem {
	p := &problem{
		n:       len(m.vars),
		obj:     make([]float64, len(m.vars)),
		varRows: make([][]int, len(m.vars)),
	}
	sign := 1.0
	if m.direction == Minimize {
		sign = -1
	}
	for _, t := range m.objective {
		p.obj[t.Var] = sign * t.Coef
	}
	p.konst = sign * m.objConst

	for _, c := range m.constraints {
		switch c.sense {
		case LessEq:
			p.addRow(c.terms, 1, c.rhs)
		case GreaterEq:
			p.addRow(c.terms, -1, -c.rhs)
		case Equal:
			p.hasEq = true
			p.addRow(c.terms, 1, c.rhs)
			p.addRow(c.terms, -1, -c.rhs)
		}
	}
	return p
}

func (p *problem) addRow(terms []Term, sign, rhs float64) {
	r := leRow{
		idx:  make([]int, len(terms)),
		coef: make([]float64, len(terms)),
		rhs:  rhs,
	}
	for k, t := range terms {
		r.idx[k] = int(t.Var)
		r.coef[k] = sign * t.Coef
	}
	id := len(p.rows)
	p.rows = append(p.rows, r)
	for _, j := range r.idx {
		p.varRows[j] = append(p.varRows[j], id)
	}
}

// value returns the maximization objective at a full 0/1 assignment.
func (p *problem) value(fixed []int8) float64 {
	v := p.konst
	for j, a := range p.obj {
		if fixed[j] == 1 {
			v += a
		}
	}
	return v
}

// feasible checks every row against a full 0/1 assignment.
func (p *problem) feasible(fixed []int8, eps float64) bool {
	for _, r := range p.rows {
		var act float64
		for k, j := range r.idx {
			if fixed[j] == 1 {
				act += r.coef[k]
			}
		}
		if act > r.rhs+eps {
			return false
		}
	}
	return true
}

// free marks an unassigned variable in a partial assignment.
const free int8 = -1

// propagate tightens the partial assignment fixed in place. For every row it
// computes the minimum activity over the free variables; a row whose minimum
// exceeds rhs proves infeasibility, and a free variable whose unfavourable
// value alone would exceed rhs is fixed to the other value. Only rows touching
// seed variables are examined first (all rows when seed is nil); rows of newly
// fixed variables are queued in turn.
//
// Fixing a variable to its minimizing value leaves the row's minimum activity
// unchanged, so one pass per row suffices until a neighbour changes.
func (p *problem) propagate(fixed []int8, seed []int, eps float64) bool {
	inQueue := make([]bool, len(p.rows))
	queue := make([]int, 0, len(p.rows))
	enqueue := func(j int) {
		for _, r := range p.varRows[j] {
			if !inQueue[r] {
				inQueue[r] = true
				queue = append(queue, r)
			}
		}
	}
	if seed == nil {
		for r := range p.rows {
			inQueue[r] = true
			queue = append(queue, r)
		}
	} else {
		for _, j := range seed {
			enqueue(j)
		}
	}

	for len(queue) > 0 {
		ri := queue[0]
		queue = queue[1:]
		inQueue[ri] = false
		r := &p.rows[ri]

		var minAct float64
		for k, j := range r.idx {
			switch {
			case fixed[j] == 1:
				minAct += r.coef[k]
			case fixed[j] == free && r.coef[k] < 0:
				minAct += r.coef[k]
			}
		}
		if minAct > r.rhs+eps {
			return false
		}
		for k, j := range r.idx {
			if fixed[j] != free {
				continue
			}
			a := r.coef[k]
			switch {
			case a > 0 && minAct+a > r.rhs+eps:
				fixed[j] = 0
			case a < 0 && minAct-a > r.rhs+eps:
				fixed[j] = 1
			default:
				continue
			}
			enqueue(j)
		}
	}
	return true
}

// comboBound is the trivial upper bound: fixed objective plus every positive
// coefficient among the free variables.
func (p *problem) comboBound(fixed []int8) float64 {
	v := p.konst
	for j, a := range p.obj {
		switch {
		case fixed[j] == 1:
			v += a
		case fixed[j] == free && a > 0:
			v += a
		}
	}
	return v
}
