// Package sampling draws i.i.d. node rewards for experiment instances.
//
// Every reward set is drawn from its own PCG stream keyed by (Seed, kind),
// so period-1 instances, solve-time scenarios and evaluation scenarios are
// independent of each other and of the requested counts of the other kinds.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/coordgame/core"
	"github.com/katalvlaran/coordgame/game"
)

// Sentinel errors for sampler configuration.
var (
	// ErrInvalidRange is returned when Low >= High or a bound is not finite.
	ErrInvalidRange = errors.New("sampling: invalid reward range")

	// ErrInvalidCount is returned for a non-positive set count.
	ErrInvalidCount = errors.New("sampling: count must be positive")
)

// Kind identifies one of the independent reward streams.
type Kind uint64

const (
	// KindNR1 is the stream of period-1 reward instances.
	KindNR1 Kind = iota + 1
	// KindSolve is the stream of period-2 scenarios used inside the solver.
	KindSolve
	// KindEval is the stream of period-2 scenarios used for evaluation only.
	KindEval
)

// String returns the storage name of k.
func (k Kind) String() string {
	switch k {
	case KindNR1:
		return "nr1"
	case KindSolve:
		return "solve"
	case KindEval:
		return "eval"
	default:
		return fmt.Sprintf("kind(%d)", uint64(k))
	}
}

// Sampler draws Uniform(Low, High) node rewards.
type Sampler struct {
	Low  float64
	High float64
	Seed uint64
}

// Default returns the U(-1, 1) sampler with seed 123.
func Default() Sampler {
	return Sampler{Low: -1, High: 1, Seed: 123}
}

// Validate checks the reward range.
func (s Sampler) Validate() error {
	if math.IsNaN(s.Low) || math.IsNaN(s.High) || math.IsInf(s.Low, 0) || math.IsInf(s.High, 0) || s.Low >= s.High {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, s.Low, s.High)
	}
	return nil
}

// Draw returns n reward maps over the vertices of g from stream k. Vertices
// are filled in natural order, set by set.
func (s Sampler) Draw(g *core.Graph, k Kind, n int) (game.Scenarios, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %s count %d", ErrInvalidCount, k, n)
	}
	dist := distuv.Uniform{
		Min: s.Low,
		Max: s.High,
		Src: rand.NewPCG(s.Seed, uint64(k)),
	}
	vertices := g.Vertices()
	out := make(game.Scenarios, n)
	for i := range out {
		r := make(game.Rewards, len(vertices))
		for _, v := range vertices {
			r[v] = dist.Rand()
		}
		out[i] = r
	}
	return out, nil
}

// Counts is the number of reward sets of each kind.
type Counts struct {
	Instances      int
	SolveScenarios int
	EvalScenarios  int
}

// DefaultCounts returns 10 instances, 100 solve scenarios and 30 evaluation
// scenarios.
func DefaultCounts() Counts {
	return Counts{Instances: 10, SolveScenarios: 100, EvalScenarios: 30}
}

// Bundle is every reward set of one experiment graph.
type Bundle struct {
	NR1s           []game.Rewards
	SolveScenarios game.Scenarios
	EvalScenarios  game.Scenarios
}

// Bundle draws all three kinds of reward sets for g.
func (s Sampler) Bundle(g *core.Graph, c Counts) (*Bundle, error) {
	nr1s, err := s.Draw(g, KindNR1, c.Instances)
	if err != nil {
		return nil, err
	}
	solve, err := s.Draw(g, KindSolve, c.SolveScenarios)
	if err != nil {
		return nil, err
	}
	eval, err := s.Draw(g, KindEval, c.EvalScenarios)
	if err != nil {
		return nil, err
	}
	return &Bundle{NR1s: nr1s, SolveScenarios: solve, EvalScenarios: eval}, nil
}
