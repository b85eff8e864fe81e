// Package equilibrium computes period-1 action profiles of the two-period
// network coordination game.
//
// # Global solver
//
// Solve formulates one binary program on the whole graph. It decides the
// period-1 action of every vertex and, for every scenario of the period-2
// reward set, a tailored period-2 response. Binary disagreement indicators
// cover every edge in period 1, every edge in each scenario and every
// vertex's period-1 vs period-2 transition in each scenario; each indicator
// is bounded below by both signed differences of the actions it covers, so
// the maximizer drives it to |a − b|. The objective is the sample-average
// approximation
//
//	Σ NR1·x1 + c·#agree1 + (1/S)·Σ_s [ Σ NR2_s·x2_s + c·#agree2_s + c·#temporal_s ]
//
// with the three agreement bonuses weighted 1:1:1. SolveFocal returns one
// vertex's period-1 action from the same program.
//
// # Localized solver
//
// SolveLocalized replaces the joint program by |V| independent programs, one
// per vertex v on the L-hop ego-network of v, keeping only v's own period-1
// action. The resulting profile is assembled entry by entry and need not be
// jointly optimal. FullDiameter is the unrestricted case: one global solve.
//
// Variables are held in an explicit dictionary keyed by (role, vertex or
// edge, scenario); nothing is looked up by parsing names. The backend is
// package mip and runs silently unless given a logger.
package equilibrium
