// SPDX-License-Identifier: MIT

package mip

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpStatus is the outcome of one relaxation.
type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpSkipped
)

// relaxation is the LP relaxation of one branch-and-bound node.
type relaxation struct {
	status lpStatus
	bound  float64
	x      []float64 // len n; fixed variables carry their fixed value
}

// relax solves the LP relaxation of p restricted by fixed, with the free
// variables relaxed to [0, 1]. The standard form handed to the simplex is
//
//	minimize   -c_F·x_F
//	subject to A_F·x_F + s = b - A_1·1   (one slack per kept row)
//	           x_F + u = 1               (one bound slack per free variable)
//	           x, s, u ≥ 0
//
// which has full row rank thanks to the slack identity block. Rows with no
// free variable are checked directly and dropped, as are rows that hold for
// every 0/1 completion. Models whose dense tableau would exceed maxEntries
// are not relaxed (status lpSkipped); callers then use comboBound.
func (p *problem) relax(fixed []int8, tol float64, maxEntries int) (rel relaxation) {
	var freeIdx []int
	pos := make([]int, p.n)
	base := p.konst
	for j := 0; j < p.n; j++ {
		pos[j] = -1
		switch fixed[j] {
		case free:
			pos[j] = len(freeIdx)
			freeIdx = append(freeIdx, j)
		case 1:
			base += p.obj[j]
		}
	}
	nf := len(freeIdx)
	if nf == 0 {
		if !p.feasible(fixed, tol) {
			return relaxation{status: lpInfeasible}
		}
		return relaxation{status: lpOptimal, bound: base, x: assignmentValues(fixed)}
	}

	type keptRow struct {
		row int
		rhs float64
	}
	kept := make([]keptRow, 0, len(p.rows))
	for ri, r := range p.rows {
		rhs := r.rhs
		var maxFree float64
		nFree := 0
		for k, j := range r.idx {
			switch fixed[j] {
			case 1:
				rhs -= r.coef[k]
			case free:
				nFree++
				if r.coef[k] > 0 {
					maxFree += r.coef[k]
				}
			}
		}
		if nFree == 0 {
			if rhs < -tol {
				return relaxation{status: lpInfeasible}
			}
			continue
		}
		if maxFree <= rhs+tol {
			continue
		}
		kept = append(kept, keptRow{row: ri, rhs: rhs})
	}

	m := len(kept)
	rows, cols := m+nf, 2*nf+m
	if maxEntries > 0 && rows*cols > maxEntries {
		return relaxation{status: lpSkipped}
	}

	A := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	for k, j := range freeIdx {
		c[k] = -p.obj[j]
	}
	for i, kr := range kept {
		r := p.rows[kr.row]
		for k, j := range r.idx {
			if pos[j] >= 0 {
				A.Set(i, pos[j], r.coef[k])
			}
		}
		A.Set(i, nf+i, 1)
		b[i] = kr.rhs
	}
	for k := 0; k < nf; k++ {
		A.Set(m+k, k, 1)
		A.Set(m+k, nf+m+k, 1)
		b[m+k] = 1
	}

	optF, optX, err := simplex(c, A, b, tol)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return relaxation{status: lpInfeasible}
		}
		return relaxation{status: lpSkipped}
	}

	x := assignmentValues(fixed)
	for k, j := range freeIdx {
		x[j] = optX[k]
	}
	return relaxation{status: lpOptimal, bound: base - optF, x: x}
}

// simplex wraps lp.Simplex, turning a panic on degenerate input into an error.
func simplex(c []float64, A mat.Matrix, b []float64, tol float64) (optF float64, optX []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simplex panic: %v", r)
		}
	}()
	return lp.Simplex(c, A, b, tol, nil)
}

// assignmentValues converts a partial assignment into float values; free
// variables read as 0.
func assignmentValues(fixed []int8) []float64 {
	x := make([]float64, len(fixed))
	for j, f := range fixed {
		if f == 1 {
			x[j] = 1
		}
	}
	return x
}
