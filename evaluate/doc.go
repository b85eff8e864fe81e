// Package evaluate scores a fixed period-1 action profile out of sample.
//
// For one evaluation scenario the realized payoff is the period-1 payoff of
// the profile plus the optimal period-2 continuation: a binary program over
// period-2 actions with spatial disagreement indicators on every edge and
// temporal indicators against the now constant period-1 actions. There is
// exactly one scenario per continuation program; EvaluateAll returns one
// payoff per scenario and the caller aggregates.
//
// Evaluation is deterministic: the same graph, profile, scenario and bonus
// always produce the same value.
package evaluate
