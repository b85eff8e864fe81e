package flow

import (
	"context"
	"math"
)

// Dinic computes the maximum flow from source to sink in nw using Dinic's
// algorithm (level graph + blocking flows). nw is left holding the residual
// capacities, so SourceSide can read the minimum cut afterwards.
//
// Steps:
//  1. Normalize options and validate source/sink.
//  2. Repeat until the sink is unreachable:
//     a. Check for cancellation.
//     b. BFS from source over arcs with residual > Epsilon to assign levels.
//     c. If sink has no level, stop.
//     d. DFS-based blocking flow along arcs leading one level deeper,
//     optionally rebuilding levels every LevelRebuildInterval augmentations.
//
// Complexity:
//
//	Time:   O(V²·E) in general; O(E·√V) on unit-capacity networks.
//	Memory: O(V) beyond the network (level and iterator slices).
func Dinic(nw *Network, source, sink int, opts FlowOptions) (maxFlow float64, err error) {
	opts.normalize()
	ctx := opts.Ctx
	if err = nw.validate(source, sink); err != nil {
		return 0, err
	}

	n := nw.Nodes()
	level := make([]int, n)
	iter := make([]int, n)
	queue := make([]int, 0, n)
	augmentCount := 0

	for {
		if err = ctx.Err(); err != nil {
			return maxFlow, err
		}

		// levels from source
		for i := range level {
			level[i] = -1
		}
		level[source] = 0
		queue = append(queue[:0], source)
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, a := range nw.adj[u] {
				if a.cap > opts.Epsilon && level[a.to] < 0 {
					level[a.to] = level[u] + 1
					queue = append(queue, a.to)
				}
			}
		}
		if level[sink] < 0 {
			break
		}

		for i := range iter {
			iter[i] = 0
		}
		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, err
			}
			pushed := dinicPush(ctx, nw, level, iter, source, sink, math.Inf(1), opts.Epsilon)
			if pushed <= opts.Epsilon {
				break
			}
			maxFlow += pushed
			augmentCount++
			opts.Logger.Debug().Float64("pushed", pushed).Float64("total", maxFlow).Msg("dinic augmentation")
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// dinicPush pushes flow along the level graph from u toward sink, updating
// residual capacities in place, and returns the amount actually sent.
func dinicPush(
	ctx context.Context,
	nw *Network,
	level, iter []int,
	u, sink int,
	available, eps float64,
) float64 {
	if ctx.Err() != nil {
		return 0
	}
	if u == sink {
		return available
	}
	for ; iter[u] < len(nw.adj[u]); iter[u]++ {
		a := nw.adj[u][iter[u]]
		if a.cap <= eps || level[a.to] != level[u]+1 {
			continue
		}
		send := available
		if a.cap < send {
			send = a.cap
		}
		pushed := dinicPush(ctx, nw, level, iter, a.to, sink, send, eps)
		if pushed > 0 {
			nw.push(u, iter[u], pushed)
			return pushed
		}
	}

	return 0
}
