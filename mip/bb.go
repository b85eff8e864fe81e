// SPDX-License-Identifier: MIT

package mip

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// lpSlack widens LP bounds before pruning.
const lpSlack = 1e-7

// bbEngine holds all search data and policies for depth-first
// branch-and-bound over binary variables.
type bbEngine struct {
	// Configuration / policy
	p          *problem
	ctx        context.Context
	eps        float64
	lpTol      float64
	intTol     float64
	maxEntries int
	useLP      bool
	nodeLimit  int
	log        zerolog.Logger

	// Counters
	nodes    int
	lpSolves int

	// Current best incumbent
	best     []int8
	bestObj  float64
	foundAny bool

	// First fatal condition (cancellation, node limit); stops the search.
	err error
}

// incumbentBeaten reports whether a subtree with upper bound ub may still
// hold a strictly better solution than the incumbent.
func (e *bbEngine) incumbentBeaten(ub float64) bool {
	return !e.foundAny || ub > e.bestObj+e.eps
}

// commit records a new incumbent.
func (e *bbEngine) commit(assign []int8, obj float64) {
	copy(e.best, assign)
	e.bestObj = obj
	e.foundAny = true
	e.log.Debug().Int("node", e.nodes).Float64("objective", obj).Msg("new incumbent")
}

// tick counts a node and surfaces cancellation and the node limit.
func (e *bbEngine) tick() bool {
	e.nodes++
	if e.nodeLimit > 0 && e.nodes > e.nodeLimit {
		e.err = fmt.Errorf("%w: node limit %d reached", ErrSolverFailure, e.nodeLimit)
		return false
	}
	if e.nodes&255 == 0 {
		if err := e.ctx.Err(); err != nil {
			e.err = fmt.Errorf("%w: %w", ErrSolverFailure, err)
			return false
		}
	}
	return true
}

// dfs explores the subtree of the partial assignment fixed. seed lists the
// variables fixed by the parent branch (nil at the root).
func (e *bbEngine) dfs(fixed []int8, seed []int) {
	if e.err != nil || !e.tick() {
		return
	}
	if !e.p.propagate(fixed, seed, e.eps) {
		return
	}

	// Bound: LP relaxation when affordable, else the combinatorial bound.
	var rel relaxation
	if e.useLP {
		rel = e.p.relax(fixed, e.lpTol, e.maxEntries)
		e.lpSolves++
	} else {
		rel.status = lpSkipped
	}
	var ub float64
	switch rel.status {
	case lpInfeasible:
		return
	case lpOptimal:
		// simplex round-off must never prune an optimal subtree
		ub = rel.bound + lpSlack*math.Max(1, math.Abs(rel.bound))
	default:
		ub = e.p.comboBound(fixed)
	}
	if !e.incumbentBeaten(ub) {
		return
	}

	branch := -1
	if rel.status == lpOptimal {
		branch = e.mostFractional(fixed, rel.x)
		if branch < 0 {
			// integral relaxation: its rounding is optimal for this subtree
			cand := append([]int8(nil), fixed...)
			for j := range cand {
				if cand[j] == free {
					cand[j] = int8(math.Round(rel.x[j]))
				}
			}
			if e.p.feasible(cand, e.eps) {
				if v := e.p.value(cand); e.incumbentBeaten(v) {
					e.commit(cand, v)
				}
				return
			}
		}
	}
	if branch < 0 {
		branch = e.firstFree(fixed)
	}
	if branch < 0 {
		// fully assigned and propagation-feasible
		if v := e.p.value(fixed); e.incumbentBeaten(v) {
			e.commit(fixed, v)
		}
		return
	}

	first := int8(0)
	if rel.status == lpOptimal {
		if rel.x[branch] >= 0.5 {
			first = 1
		}
	} else if e.p.obj[branch] > 0 {
		first = 1
	}
	for _, val := range [2]int8{first, 1 - first} {
		child := append([]int8(nil), fixed...)
		child[branch] = val
		e.dfs(child, []int{branch})
		if e.err != nil {
			return
		}
	}
}

// mostFractional returns the free variable whose relaxed value is closest
// to 0.5 (lowest index on ties), or -1 when all are within intTol of 0/1.
func (e *bbEngine) mostFractional(fixed []int8, x []float64) int {
	best, bestDist := -1, 0.5
	for j, f := range fixed {
		if f != free {
			continue
		}
		frac := math.Abs(x[j] - math.Round(x[j]))
		if frac <= e.intTol {
			continue
		}
		if d := math.Abs(x[j] - 0.5); best < 0 || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// firstFree returns the free variable with the largest |objective|
// (lowest index on ties), or -1 if none is free.
func (e *bbEngine) firstFree(fixed []int8) int {
	best := -1
	for j, f := range fixed {
		if f != free {
			continue
		}
		if best < 0 || math.Abs(e.p.obj[j]) > math.Abs(e.p.obj[best]) {
			best = j
		}
	}
	return best
}

// branchAndBound is the entrypoint of the exact search. It returns the
// optimal assignment or ErrInfeasible / ErrSolverFailure.
func branchAndBound(ctx context.Context, p *problem, o options) ([]int8, float64, int, error) {
	var e bbEngine
	e.p = p
	e.ctx = ctx
	e.eps = o.tolerance
	e.lpTol = o.lpTolerance
	e.intTol = 1e-6
	e.maxEntries = o.maxLPEntries
	e.useLP = o.useLP
	e.nodeLimit = o.nodeLimit
	e.log = o.logger
	e.best = make([]int8, p.n)

	if err := ctx.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}

	root := make([]int8, p.n)
	for j := range root {
		root[j] = free
	}
	e.dfs(root, nil)

	e.log.Debug().Int("nodes", e.nodes).Int("lp_solves", e.lpSolves).Bool("found", e.foundAny).Msg("branch-and-bound finished")
	if e.err != nil {
		return nil, 0, e.nodes, e.err
	}
	if !e.foundAny {
		return nil, 0, e.nodes, ErrInfeasible
	}
	return e.best, e.bestObj, e.nodes, nil
}
