// SPDX-License-Identifier: MIT

package mip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Sentinel errors returned by Solve and model construction.
var (
	// ErrInfeasible indicates the model has no 0/1 point satisfying all constraints.
	ErrInfeasible = errors.New("mip: model is infeasible")

	// ErrSolverFailure indicates the solver could not finish: node limit,
	// cancellation, or an internal numerical failure.
	ErrSolverFailure = errors.New("mip: solver failure")

	// ErrInvalidModel indicates a malformed model (unknown variable, NaN coefficient, ...).
	ErrInvalidModel = errors.New("mip: invalid model")

	// ErrNotPairwise is returned when MinCut is requested for a model that is
	// not a penalized pairwise-agreement program.
	ErrNotPairwise = errors.New("mip: model is not a pairwise agreement program")
)

// Method selects the solution algorithm.
type Method int

const (
	// Auto uses MinCut when the model is recognized as a penalized pairwise
	// agreement program, and BranchAndBound otherwise.
	Auto Method = iota
	// BranchAndBound is depth-first branch-and-bound with LP relaxation bounds.
	BranchAndBound
	// MinCut solves pairwise agreement programs exactly via one s-t minimum cut.
	MinCut
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case BranchAndBound:
		return "branch-and-bound"
	case MinCut:
		return "min-cut"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// options holds solver parameters; see the With* functions.
type options struct {
	logger       zerolog.Logger
	method       Method
	tolerance    float64
	lpTolerance  float64
	flowEpsilon  float64
	nodeLimit    int
	maxLPEntries int
	useLP        bool
}

func defaultOptions() options {
	return options{
		logger:       zerolog.Nop(),
		method:       Auto,
		tolerance:    1e-9,
		lpTolerance:  1e-10,
		flowEpsilon:  1e-12,
		nodeLimit:    0,
		maxLPEntries: 1 << 22,
		useLP:        true,
	}
}

// Option configures Solve.
type Option func(*options)

// WithLogger routes solver progress to l. The default is silent.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMethod forces a solution algorithm.
func WithMethod(m Method) Option {
	return func(o *options) { o.method = m }
}

// WithTolerance sets the feasibility and pruning tolerance (default 1e-9).
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithNodeLimit caps branch-and-bound nodes; 0 means unlimited.
// Exceeding the cap fails the solve with ErrSolverFailure.
func WithNodeLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.nodeLimit = n
		}
	}
}

// WithLPRelaxation toggles LP bounds in branch-and-bound. When disabled, or
// when the dense tableau would exceed maxEntries cells, the combinatorial
// bound is used.
func WithLPRelaxation(enabled bool, maxEntries int) Option {
	return func(o *options) {
		o.useLP = enabled
		if maxEntries > 0 {
			o.maxLPEntries = maxEntries
		}
	}
}

// Solution is an optimal 0/1 point of a Model.
type Solution struct {
	// Objective is the optimal objective value in the model's direction.
	Objective float64
	// Values holds the 0/1 value of each variable, indexed by Var.
	Values []float64
	// Method is the algorithm that produced the solution.
	Method Method
	// Nodes is the number of branch-and-bound nodes (0 for MinCut).
	Nodes int
	// Elapsed is the wall time spent in Solve.
	Elapsed time.Duration
}

// Value returns the value of v.
func (s *Solution) Value(v Var) float64 { return s.Values[v] }

// Bool reports whether v is 1.
func (s *Solution) Bool(v Var) bool { return s.Values[v] >= 0.5 }

// Solve returns an optimal solution of m. The model is not modified. Solve
// is deterministic: the same model and options always yield the same point.
//
// Errors: ErrInfeasible when no 0/1 point is feasible; ErrSolverFailure on
// cancellation, node limit or numerical failure; ErrNotPairwise when MinCut
// is forced on an unsupported model.
func Solve(ctx context.Context, m *Model, opts ...Option) (*Solution, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: %w: nil model", ErrSolverFailure, ErrInvalidModel)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()
	p := compile(m)

	method := o.method
	var pw *pairwise
	if method == Auto || method == MinCut {
		var ok bool
		pw, ok = detectPairwise(p, o.tolerance)
		switch {
		case ok:
			method = MinCut
		case method == MinCut:
			return nil, fmt.Errorf("Solve(%q): %w", m.name, ErrNotPairwise)
		default:
			method = BranchAndBound
		}
	}
	o.logger.Debug().
		Str("model", m.name).
		Int("vars", p.n).
		Int("constraints", len(m.constraints)).
		Stringer("method", method).
		Msg("solve start")

	var (
		assign []int8
		nodes  int
		err    error
	)
	if method == MinCut {
		assign, err = solveCut(ctx, p, pw, o)
	} else {
		assign, _, nodes, err = branchAndBound(ctx, p, o)
	}
	if err != nil {
		return nil, fmt.Errorf("Solve(%q): %w", m.name, err)
	}

	sol := &Solution{
		Values:  assignmentValues(assign),
		Method:  method,
		Nodes:   nodes,
		Elapsed: time.Since(start),
	}
	sol.Objective = m.ObjectiveValue(sol.Values)
	o.logger.Debug().
		Str("model", m.name).
		Float64("objective", sol.Objective).
		Dur("elapsed", sol.Elapsed).
		Msg("solve done")

	return sol, nil
}
