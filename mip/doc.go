// SPDX-License-Identifier: MIT

// Package mip is a small pure binary integer-programming backend.
//
// A Model holds binary variables, linear constraints (<=, >=, =) and a linear
// objective with a constant term, maximized or minimized. Solve returns a
// provably optimal 0/1 point or a sentinel error; it never returns a
// partial or heuristic answer.
//
// # Methods
//
//   - MinCut. Models whose constraints are all disagreement-indicator pairs
//
//     d ≥ a − b,  d ≥ b − a      (or d ≥ a − k, d ≥ k − a with k ∈ {0,1})
//
//     with d penalized in the objective are pairwise agreement programs with
//     submodular energy. They are solved exactly by a single minimum s-t cut
//     (package flow, Dinic). This covers the coordination-game formulations
//     of this module at any scale.
//
//   - BranchAndBound. Any other model is solved by depth-first
//     branch-and-bound with bound propagation and LP relaxation bounds
//     (gonum optimize/convex/lp simplex). If a relaxation is too large or
//     numerically fails, the combinatorial bound is used instead, which
//     keeps the search exact.
//
// Auto (the default) picks MinCut when it applies.
//
// # Silence
//
// Solve logs through a zerolog.Logger supplied with WithLogger; the default
// is zerolog.Nop(), so batch runs are non-interactive.
//
// # Errors
//
//   - ErrInfeasible      no 0/1 point satisfies the constraints.
//   - ErrSolverFailure   cancellation, node limit, numerical failure.
//   - ErrInvalidModel    malformed constraint or objective.
//   - ErrNotPairwise     WithMethod(MinCut) on an unsupported model.
package mip
