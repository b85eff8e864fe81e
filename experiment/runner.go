// Package experiment drives the reference pipeline over persisted artifacts:
// import a network, sample its rewards, solve every (c, L, instance)
// configuration and evaluate the solved profiles on held-out scenarios.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/coordgame/bfs"
	"github.com/katalvlaran/coordgame/config"
	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/equilibrium"
	"github.com/katalvlaran/coordgame/evaluate"
	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/mip"
	"github.com/katalvlaran/coordgame/sampling"
	"github.com/katalvlaran/coordgame/store"
)

// Sentinel errors.
var (
	// ErrMissingArtifact is returned when an input artifact (graph, reward
	// set, instance or solution) is absent from the store.
	ErrMissingArtifact = errors.New("experiment: missing artifact")

	// ErrDisconnectedGraph is returned by ImportGraph for a graph whose
	// diameter is undefined.
	ErrDisconnectedGraph = errors.New("experiment: graph is not connected")
)

// Runner executes pipeline stages against a Store.
type Runner struct {
	Store  *store.Store
	Logger zerolog.Logger
	Config *config.Config
}

// New returns a Runner over st configured by cfg.
func New(st *store.Store, cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{Store: st, Logger: logger, Config: cfg}
}

func missing(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrMissingArtifact, err)
	}
	return err
}

func (r *Runner) solverOptions() []mip.Option {
	opts := []mip.Option{
		mip.WithTolerance(r.Config.Solver.Tolerance),
		mip.WithNodeLimit(r.Config.Solver.NodeLimit),
	}
	if r.Config.Solver.Verbose {
		opts = append(opts, mip.WithLogger(r.Logger.With().Str("component", "mip").Logger()))
	}
	return opts
}

func (r *Runner) equilibriumOptions() []equilibrium.Option {
	return []equilibrium.Option{
		equilibrium.WithLogger(r.Logger),
		equilibrium.WithSolverOptions(r.solverOptions()...),
		equilibrium.WithWorkers(r.Config.EffectiveWorkers()),
	}
}

func (r *Runner) evaluateOptions() []evaluate.Option {
	return []evaluate.Option{
		evaluate.WithLogger(r.Logger),
		evaluate.WithSolverOptions(r.solverOptions()...),
		evaluate.WithWorkers(r.Config.EffectiveWorkers()),
	}
}

// ImportGraph parses an edge list, checks connectivity, computes the
// diameter and persists both under size.
func (r *Runner) ImportGraph(ctx context.Context, size int, in io.Reader) (*core.Graph, int, error) {
	g, err := core.ReadEdgeList(in)
	if err != nil {
		return nil, 0, fmt.Errorf("ImportGraph: %w", err)
	}
	diameter, err := bfs.Diameter(g, bfs.WithContext(ctx))
	if err != nil {
		if errors.Is(err, bfs.ErrDisconnected) {
			return nil, 0, fmt.Errorf("ImportGraph: %w: %w", ErrDisconnectedGraph, err)
		}
		return nil, 0, fmt.Errorf("ImportGraph: %w", err)
	}
	if err := r.Store.SaveGraph(ctx, size, g, diameter); err != nil {
		return nil, 0, fmt.Errorf("ImportGraph: %w", err)
	}
	r.Logger.Info().
		Int("size", size).
		Int("vertices", g.VertexCount()).
		Int("edges", g.EdgeCount()).
		Int("diameter", diameter).
		Msg("graph imported")

	return g, diameter, nil
}

// SampleRewards draws the period-1 instances and both scenario sets for the
// stored graph of size and persists them.
func (r *Runner) SampleRewards(ctx context.Context, size int) (*sampling.Bundle, error) {
	g, _, err := r.Store.LoadGraph(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("SampleRewards: %w", missing(err))
	}
	sc := r.Config.Sampling
	sampler := sampling.Sampler{Low: sc.Low, High: sc.High, Seed: sc.Seed}
	bundle, err := sampler.Bundle(g, sampling.Counts{
		Instances:      sc.Instances,
		SolveScenarios: sc.SolveScenarios,
		EvalScenarios:  sc.EvalScenarios,
	})
	if err != nil {
		return nil, fmt.Errorf("SampleRewards: %w", err)
	}

	sets := []struct {
		kind string
		data []game.Rewards
	}{
		{store.KindNR1, bundle.NR1s},
		{store.KindSolve, bundle.SolveScenarios},
		{store.KindEval, bundle.EvalScenarios},
	}
	for _, s := range sets {
		if err := r.Store.SaveRewards(ctx, size, s.kind, s.data); err != nil {
			return nil, fmt.Errorf("SampleRewards: %w", err)
		}
	}
	r.Logger.Info().
		Int("size", size).
		Int("instances", len(bundle.NR1s)).
		Int("solve_scenarios", len(bundle.SolveScenarios)).
		Int("eval_scenarios", len(bundle.EvalScenarios)).
		Uint64("seed", sc.Seed).
		Msg("rewards sampled")

	return bundle, nil
}

// loadInstance returns the graph, its diameter and period-1 instance i.
func (r *Runner) loadInstance(ctx context.Context, size, instance int) (*core.Graph, int, game.Rewards, error) {
	g, diameter, err := r.Store.LoadGraph(ctx, size)
	if err != nil {
		return nil, 0, nil, missing(err)
	}
	nr1s, err := r.Store.LoadRewards(ctx, size, store.KindNR1)
	if err != nil {
		return nil, 0, nil, missing(err)
	}
	if instance < 0 || instance >= len(nr1s) {
		return nil, 0, nil, fmt.Errorf("%w: instance %d of %d", ErrMissingArtifact, instance, len(nr1s))
	}
	return g, diameter, nr1s[instance], nil
}

// SolveOne solves one configuration and persists its period-1 profile. The
// global program is used when L is FullDiameter, the localized
// approximation otherwise. The stored objective is the in-sample SAA value
// of the profile.
func (r *Runner) SolveOne(ctx context.Context, size int, c float64, L equilibrium.Locality, instance int) (*store.Solution, error) {
	g, _, nr1, err := r.loadInstance(ctx, size, instance)
	if err != nil {
		return nil, fmt.Errorf("SolveOne: %w", err)
	}
	solveSet, err := r.Store.LoadRewards(ctx, size, store.KindSolve)
	if err != nil {
		return nil, fmt.Errorf("SolveOne: %w", missing(err))
	}
	nr2s := game.Scenarios(solveSet)
	key := store.SolutionKey{Size: size, C: c, Locality: int(L), Instance: instance}

	start := time.Now()
	var (
		profile   game.Profile
		objective float64
	)
	if L == equilibrium.FullDiameter {
		res, err := equilibrium.Solve(ctx, g, nr1, nr2s, c, r.equilibriumOptions()...)
		if err != nil {
			return nil, fmt.Errorf("SolveOne(%s): %w", key, err)
		}
		profile, objective = res.Period1, res.Objective
	} else {
		profile, err = equilibrium.SolveLocalized(ctx, g, nr1, nr2s, c, L, r.equilibriumOptions()...)
		if err != nil {
			return nil, fmt.Errorf("SolveOne(%s): %w", key, err)
		}
	}
	elapsed := time.Since(start)

	if L != equilibrium.FullDiameter {
		payoffs, err := evaluate.EvaluateAll(ctx, g, nr1, profile, c, nr2s, r.evaluateOptions()...)
		if err != nil {
			return nil, fmt.Errorf("SolveOne(%s): %w", key, err)
		}
		objective = evaluate.Mean(payoffs)
	}

	sol := &store.Solution{Key: key, Profile: profile, RunTime: elapsed, Objective: objective}
	if err := r.Store.SaveSolution(ctx, sol); err != nil {
		return nil, fmt.Errorf("SolveOne(%s): %w", key, err)
	}
	r.Logger.Info().
		Str("key", key.String()).
		Str("run_id", sol.RunID).
		Dur("run_time", elapsed).
		Float64("objective", objective).
		Int("ones", len(profile.Ones())).
		Msg("configuration solved")

	return sol, nil
}

// SolveAll sweeps every configured (instance, c, L) for size. Configurations
// already stored are skipped. A missing artifact aborts only the affected
// configuration; the sweep goes on and the failures are returned joined.
func (r *Runner) SolveAll(ctx context.Context, size int) (solved int, err error) {
	var errs []error
	for i := 0; i < r.Config.Sampling.Instances; i++ {
		for _, c := range r.Config.Experiment.Bonuses {
			for _, l := range r.Config.Experiment.Localities {
				if err := ctx.Err(); err != nil {
					return solved, err
				}
				L := equilibrium.Locality(l)
				key := store.SolutionKey{Size: size, C: c, Locality: l, Instance: i}
				_, err := r.Store.LoadSolution(ctx, key)
				if err == nil {
					r.Logger.Debug().Str("key", key.String()).Msg("already solved, skipping")
					continue
				}
				if !errors.Is(err, store.ErrNotFound) {
					return solved, fmt.Errorf("SolveAll(%s): %w", key, err)
				}
				if _, err := r.SolveOne(ctx, size, c, L, i); err != nil {
					if errors.Is(err, ErrMissingArtifact) {
						r.Logger.Warn().Err(err).Str("key", key.String()).Msg("configuration skipped")
						errs = append(errs, err)
						continue
					}
					return solved, err
				}
				solved++
			}
		}
	}

	return solved, errors.Join(errs...)
}

// EvaluateInstance scores the stored solution of every configured (c, L)
// for the given instance against each evaluation scenario, persists the
// rows and returns them. Rows report L as the diameter for the full-network
// configuration and number instances from 1. The first failure aborts the
// call and nothing is persisted.
func (r *Runner) EvaluateInstance(ctx context.Context, size, instance int) ([]store.PayoffRow, error) {
	g, diameter, nr1, err := r.loadInstance(ctx, size, instance)
	if err != nil {
		return nil, fmt.Errorf("EvaluateInstance: %w", err)
	}
	evalSet, err := r.Store.LoadRewards(ctx, size, store.KindEval)
	if err != nil {
		return nil, fmt.Errorf("EvaluateInstance: %w", missing(err))
	}
	scenarios := game.Scenarios(evalSet)

	var rows []store.PayoffRow
	for _, c := range r.Config.Experiment.Bonuses {
		for _, l := range r.Config.Experiment.Localities {
			key := store.SolutionKey{Size: size, C: c, Locality: l, Instance: instance}
			sol, err := r.Store.LoadSolution(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("EvaluateInstance: %w", missing(err))
			}
			payoffs, err := evaluate.EvaluateAll(ctx, g, nr1, sol.Profile, c, scenarios, r.evaluateOptions()...)
			if err != nil {
				return nil, fmt.Errorf("EvaluateInstance(%s): %w", key, err)
			}

			reported := l
			if equilibrium.Locality(l) == equilibrium.FullDiameter {
				reported = diameter
			}
			for s, p := range payoffs {
				rows = append(rows, store.PayoffRow{
					C:           c,
					L:           reported,
					Instance:    instance + 1,
					Realization: s,
					Payoff:      p,
				})
			}
			r.Logger.Debug().
				Str("key", key.String()).
				Float64("mean_payoff", evaluate.Mean(payoffs)).
				Msg("configuration evaluated")
		}
	}

	if err := r.Store.SavePayoffs(ctx, size, rows); err != nil {
		return nil, fmt.Errorf("EvaluateInstance: %w", err)
	}
	r.Logger.Info().Int("size", size).Int("instance", instance+1).Int("rows", len(rows)).Msg("instance evaluated")

	return rows, nil
}

// Export writes every stored payoff row of size as CSV.
func (r *Runner) Export(ctx context.Context, size int, w io.Writer) error {
	rows, err := r.Store.LoadPayoffs(ctx, size)
	if err != nil {
		return fmt.Errorf("Export: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("Export: %w: no payoffs for size %d", ErrMissingArtifact, size)
	}
	return store.ExportPayoffsCSV(w, rows)
}

// ExportGraph writes the stored graph of size to w as a canonical edge list
// that ImportGraph accepts back.
func (r *Runner) ExportGraph(ctx context.Context, size int, w io.Writer) error {
	g, diameter, err := r.Store.LoadGraph(ctx, size)
	if err != nil {
		return fmt.Errorf("ExportGraph: %w", missing(err))
	}
	if err := core.WriteEdgeList(w, g); err != nil {
		return fmt.Errorf("ExportGraph: %w", err)
	}
	r.Logger.Debug().Int("size", size).Int("diameter", diameter).Msg("graph exported")
	return nil
}
