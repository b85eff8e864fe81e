package equilibrium

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/coordgame/bfs"
	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
)

// SolveLocalized approximates the period-1 profile by independent
// ego-network solves: for every vertex v it solves the program on the
// subgraph induced by the vertices within L hops of v, using nr1 and nr2s
// restricted to that subgraph, and keeps only v's own period-1 action.
//
// L == FullDiameter skips the decomposition and returns Solve(...).Period1.
// L == 0 reduces every sub-solve to the isolated two-period best response.
//
// Sub-solves share nothing and run on up to WithWorkers goroutines; the
// first failure cancels the rest and is returned.
func SolveLocalized(ctx context.Context, g *core.Graph, nr1 game.Rewards, nr2s game.Scenarios, c float64, L Locality, opts ...Option) (game.Profile, error) {
	if L < FullDiameter {
		return nil, fmt.Errorf("SolveLocalized: %w: %d", ErrInvalidLocality, L)
	}
	if err := validate(g, nr1, nr2s, c); err != nil {
		return nil, fmt.Errorf("SolveLocalized: %w", err)
	}
	cfg := newConfig(opts)

	if L == FullDiameter {
		res, err := solve(ctx, g, nr1, nr2s, c, cfg)
		if err != nil {
			return nil, fmt.Errorf("SolveLocalized: %w", err)
		}
		return res.Period1, nil
	}

	vertices := g.Vertices()
	actions := make([]game.Action, len(vertices))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers)
	for i, v := range vertices {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			ego, err := bfs.EgoGraph(g, v, int(L))
			if err != nil {
				return fmt.Errorf("ego-network of %q: %w", v, err)
			}
			res, err := solve(egCtx, ego, nr1.Restrict(ego), nr2s.Restrict(ego), c, cfg)
			if err != nil {
				return fmt.Errorf("vertex %q: %w", v, err)
			}
			actions[i] = res.Period1[v]
			cfg.logger.Debug().
				Str("vertex", v).
				Stringer("locality", L).
				Int("ego_vertices", ego.VertexCount()).
				Stringer("action", actions[i]).
				Msg("ego-network solved")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("SolveLocalized(L=%s): %w", L, err)
	}

	x := make(game.Profile, len(vertices))
	for i, v := range vertices {
		x[v] = actions[i]
	}
	return x, nil
}
