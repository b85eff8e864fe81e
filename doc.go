// Package coordgame solves a two-period coordination game on a network.
//
// Every node picks a binary action in each of two periods. Period-1 rewards
// are known; period-2 rewards are uncertain and represented by a finite set
// of equally weighted scenarios. Neighbours earn a bonus c when their actions
// agree, and every node earns c again when it keeps its period-1 action.
//
// Packages:
//
//	core/        undirected graph with deterministic, natural-order enumeration
//	bfs/         breadth-first search, L-hop ego-networks, diameter
//	game/        action profiles, rewards and the payoff functional
//	flow/        Dinic max-flow and min-cut on residual networks
//	mip/         0/1 integer programs: min-cut for pairwise models, branch-and-bound otherwise
//	equilibrium/ sample-average equilibrium solver and its ego-network approximation
//	evaluate/    realized two-period payoff of a fixed period-1 profile
//	sampling/    reproducible U(low, high) reward draws
//	store/       SQLite persistence of graphs, rewards, solutions and payoffs
//	config/      YAML configuration and logger construction
//	experiment/  pipeline stages over the store
//	cmd/         the coordgame command-line front end
//
// Quick start:
//
//	coordgame import-graph graph.txt --size 20
//	coordgame sample --size 20
//	coordgame solve --size 20
//	coordgame evaluate --size 20
//	coordgame export --size 20 --out payoffs.csv
package coordgame
