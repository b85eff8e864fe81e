// Package game defines the data model of the two-period network coordination
// game and the period payoff functional.
//
// # Types
//
//   - Action   a binary decision, Off (0) or On (1).
//   - Profile  vertex ID → Action for one period.
//   - Rewards  vertex ID → scalar node reward for one period.
//   - Scenarios an ordered, equally weighted set of period-2 Rewards.
//
// # Payoff
//
//	Payoff1(g, r, x, c) = Σ_{v : x[v]=1} r[v] + c·|{(u,v) ∈ E : x[u] = x[v]}|
//
// Each undirected edge contributes at most once; isolated vertices contribute
// only their own reward. The functional is pure and does not depend on the
// endpoint order of any edge.
//
// Continuation2 adds the temporal bonus c per vertex keeping its period-1
// action, and Expected averages it over a scenario set. The solvers
// recompute their objectives with these two functions.
//
// Exhaustive enumeration helpers for tests live in game/gametest.
//
// # Errors
//
//   - ErrMissingReward  a graph vertex has no reward entry.
//   - ErrMissingAction  a graph vertex has no action entry.
//   - ErrInvalidBonus   the agreement bonus is negative, NaN or infinite.
//   - ErrNoScenarios    an empty scenario set was supplied.
package game
