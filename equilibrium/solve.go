package equilibrium

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/mip"
)

// validate checks the inputs shared by every solver entry point.
func validate(g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64) error {
	if g == nil {
		return ErrGraphNil
	}
	if err := game.ValidateBonus(c); err != nil {
		return err
	}
	if len(nr2s) == 0 {
		return ErrNoScenarios
	}
	if err := nr1.Validate(g); err != nil {
		return fmt.Errorf("period 1: %w", err)
	}
	if err := nr2s.Validate(g); err != nil {
		return fmt.Errorf("period 2: %w", err)
	}
	return nil
}

// backendError maps a mip error onto the equilibrium taxonomy.
func backendError(err error) error {
	if errors.Is(err, mip.ErrInfeasible) {
		return fmt.Errorf("%w: %w", ErrInfeasibleModel, err)
	}
	return fmt.Errorf("%w: %w", ErrSolverFailure, err)
}

// Solve jointly optimizes period-1 actions and one period-2 response per
// scenario on g, maximizing the sample-average two-period payoff with
// spatial and temporal agreement bonus c. Every scenario has weight
// 1/len(nr2s).
//
// The returned Objective is game.Expected of the returned profiles; a
// backend optimum that disagrees with it is reported as ErrSolverFailure.
//
// Errors: ErrGraphNil, ErrNoScenarios, game.ErrInvalidBonus,
// game.ErrMissingReward, ErrInfeasibleModel, ErrSolverFailure.
func Solve(ctx context.Context, g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64, opts ...Option) (*Result, error) {
	if err := validate(g, nr1, nr2s, c); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	return solve(ctx, g, nr1, nr2s, c, newConfig(opts))
}

// solve runs one validated formulation.
func solve(ctx context.Context, g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64, cfg config) (*Result, error) {
	f, err := buildSAA(g, nr1, nr2s, c)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", backendError(err))
	}
	sol, err := mip.Solve(ctx, f.model, cfg.mipOpts...)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", backendError(err))
	}
	cfg.logger.Debug().
		Int("vertices", len(f.vertices)).
		Int("scenarios", f.scenarios).
		Int("vars", f.model.NumVars()).
		Float64("objective", sol.Objective).
		Stringer("method", sol.Method).
		Dur("elapsed", sol.Elapsed).
		Msg("saa solved")

	res := f.extract(sol)
	payoff, err := game.Expected(g, nr1, nr2s, res.Period1, res.Period2, c)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	if !agrees(payoff, sol.Objective, cfg.checkTol) {
		return nil, fmt.Errorf("Solve: %w: backend objective %v, payoff of extracted profiles %v",
			ErrSolverFailure, sol.Objective, payoff)
	}
	res.Objective = payoff

	return res, nil
}

// agrees reports whether a and b are equal up to tol, relative for large values.
func agrees(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// SolveFocal solves the program on g and returns only the period-1 action
// of focal.
func SolveFocal(ctx context.Context, g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64, focal string, opts ...Option) (game.Action, error) {
	if g != nil && !g.HasVertex(focal) {
		return game.Off, fmt.Errorf("SolveFocal: %w: %q", ErrFocalNotFound, focal)
	}
	res, err := Solve(ctx, g, nr1, nr2s, c, opts...)
	if err != nil {
		return game.Off, fmt.Errorf("SolveFocal(%q): %w", focal, err)
	}
	return res.Period1[focal], nil
}
