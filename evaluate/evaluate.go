package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/mip"
)

// Sentinel errors for payoff evaluation.
var (
	// ErrGraphNil is returned when a nil graph is passed.
	ErrGraphNil = errors.New("evaluate: graph is nil")

	// ErrInfeasibleModel is returned when the continuation program is
	// reported infeasible. Every period-2 profile is feasible, so this
	// signals a bug.
	ErrInfeasibleModel = errors.New("evaluate: continuation program infeasible")

	// ErrSolverFailure is returned for any other backend failure.
	ErrSolverFailure = errors.New("evaluate: solver failure")
)

// objectiveTol bounds the relative gap between the backend optimum and the
// recomputed continuation payoff.
const objectiveTol = 1e-6

// Option configures the evaluator.
type Option func(*config)

type config struct {
	logger  zerolog.Logger
	mipOpts []mip.Option
	workers int
}

func newConfig(opts []Option) config {
	c := config{logger: zerolog.Nop(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger sets the logger for evaluation events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSolverOptions forwards options to every mip.Solve call.
func WithSolverOptions(opts ...mip.Option) Option {
	return func(c *config) { c.mipOpts = append(c.mipOpts, opts...) }
}

// WithWorkers bounds the number of scenarios evaluated concurrently by
// EvaluateAll. n < 1 means one worker.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// backendError maps a mip error onto the evaluate taxonomy.
func backendError(err error) error {
	if errors.Is(err, mip.ErrInfeasible) {
		return fmt.Errorf("%w: %w", ErrInfeasibleModel, err)
	}
	return fmt.Errorf("%w: %w", ErrSolverFailure, err)
}

// Response is the optimal period-2 reaction to a fixed period-1 profile.
type Response struct {
	// Profile is the optimal period-2 action of every vertex.
	Profile game.Profile
	// Value is the optimal period-2 payoff, temporal bonus included.
	Value float64
}

// BestResponse solves the continuation program: given the fixed period-1
// profile x and one realized period-2 reward map nr2, choose period-2
// actions a to maximize
//
//	Σ_v NR2_v·a_v + c·Σ_e (1 − e_e) + c·Σ_v (1 − t_v)
//
// where e_e ≥ |a_u − a_w| on every edge and t_v ≥ |a_v − x_v| with x_v a
// constant.
func BestResponse(ctx context.Context, g *core.Graph, x game.Profile, nr2 game.Rewards, c float64, opts ...Option) (*Response, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if err := game.ValidateBonus(c); err != nil {
		return nil, fmt.Errorf("BestResponse: %w", err)
	}
	if err := x.Validate(g); err != nil {
		return nil, fmt.Errorf("BestResponse: %w", err)
	}
	if err := nr2.Validate(g); err != nil {
		return nil, fmt.Errorf("BestResponse: %w", err)
	}
	return bestResponse(ctx, g, x, nr2, c, newConfig(opts))
}

func bestResponse(ctx context.Context, g *core.Graph, x game.Profile, nr2 game.Rewards, c float64, cfg config) (*Response, error) {
	m := mip.NewModel("continuation")
	vertices := g.Vertices()
	obj := mip.NewExpr()

	act := make(map[string]mip.Var, len(vertices))
	for _, v := range vertices {
		act[v] = m.AddBinary("a[" + v + "]")
		obj.Add(act[v], nr2[v])
	}
	for _, e := range g.Edges() {
		d := m.AddBinary("e[" + e.From + "," + e.To + "]")
		a, b := act[e.From], act[e.To]
		if err := m.AddConstraint("", mip.NewExpr().Add(d, 1).Add(a, -1).Add(b, 1), mip.GreaterEq, 0); err != nil {
			return nil, err
		}
		if err := m.AddConstraint("", mip.NewExpr().Add(d, 1).Add(b, -1).Add(a, 1), mip.GreaterEq, 0); err != nil {
			return nil, err
		}
		obj.Add(d, -c).AddConstant(c)
	}
	for _, v := range vertices {
		t := m.AddBinary("t[" + v + "]")
		k := x[v].Float()
		// t ≥ a − k and t ≥ k − a
		if err := m.AddConstraint("", mip.NewExpr().Add(t, 1).Add(act[v], -1), mip.GreaterEq, -k); err != nil {
			return nil, err
		}
		if err := m.AddConstraint("", mip.NewExpr().Add(t, 1).Add(act[v], 1), mip.GreaterEq, k); err != nil {
			return nil, err
		}
		obj.Add(t, -c).AddConstant(c)
	}
	if err := m.SetObjective(obj, mip.Maximize); err != nil {
		return nil, err
	}

	sol, err := mip.Solve(ctx, m, cfg.mipOpts...)
	if err != nil {
		return nil, backendError(err)
	}

	resp := &Response{Profile: make(game.Profile, len(vertices))}
	for _, v := range vertices {
		resp.Profile[v] = game.ActionOf(sol.Value(act[v]))
	}
	value, err := game.Continuation2(g, nr2, x, resp.Profile, c)
	if err != nil {
		return nil, err
	}
	if math.Abs(value-sol.Objective) > objectiveTol*math.Max(1, math.Abs(value)) {
		return nil, fmt.Errorf("%w: backend objective %v, payoff of response %v",
			ErrSolverFailure, sol.Objective, value)
	}
	resp.Value = value
	return resp, nil
}

// Continuation returns the optimal period-2 payoff given the fixed period-1
// profile x and the realized rewards nr2.
func Continuation(ctx context.Context, g *core.Graph, x game.Profile, nr2 game.Rewards, c float64, opts ...Option) (float64, error) {
	resp, err := BestResponse(ctx, g, x, nr2, c, opts...)
	if err != nil {
		return 0, err
	}
	return resp.Value, nil
}

// Evaluate returns the realized two-period payoff of x for one evaluation
// scenario: Payoff1(g, nr1, x, c) plus the optimal continuation under nr2.
func Evaluate(ctx context.Context, g *core.Graph, nr1 game.Rewards, x game.Profile, c float64, nr2 game.Rewards, opts ...Option) (float64, error) {
	if g == nil {
		return 0, ErrGraphNil
	}
	p1, err := game.Payoff1(g, nr1, x, c)
	if err != nil {
		return 0, fmt.Errorf("Evaluate: %w", err)
	}
	p2, err := Continuation(ctx, g, x, nr2, c, opts...)
	if err != nil {
		return 0, fmt.Errorf("Evaluate: %w", err)
	}
	return p1 + p2, nil
}

// EvaluateAll evaluates x against every scenario and returns one payoff per
// scenario, in scenario order. Averaging is left to the caller.
func EvaluateAll(ctx context.Context, g *core.Graph, nr1 game.Rewards, x game.Profile, c float64, scenarios game.Scenarios, opts ...Option) ([]float64, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if err := scenarios.Validate(g); err != nil {
		return nil, fmt.Errorf("EvaluateAll: %w", err)
	}
	p1, err := game.Payoff1(g, nr1, x, c)
	if err != nil {
		return nil, fmt.Errorf("EvaluateAll: %w", err)
	}
	cfg := newConfig(opts)

	out := make([]float64, len(scenarios))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers)
	for s, nr2 := range scenarios {
		eg.Go(func() error {
			resp, err := bestResponse(egCtx, g, x, nr2, c, cfg)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", s, err)
			}
			out[s] = p1 + resp.Value
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("EvaluateAll: %w", err)
	}
	cfg.logger.Debug().Int("scenarios", len(out)).Float64("period1", p1).Msg("profile evaluated")

	return out, nil
}

// Mean returns the arithmetic mean of payoffs (0 for an empty slice).
func Mean(payoffs []float64) float64 {
	if len(payoffs) == 0 {
		return 0
	}
	var sum float64
	for _, p := range payoffs {
		sum += p
	}
	return sum / float64(len(payoffs))
}
