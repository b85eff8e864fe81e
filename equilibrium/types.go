package equilibrium

import (
	"errors"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/coordgame/game"
	"github.com/katalvlaran/coordgame/mip"
)

// Sentinel errors for equilibrium solves.
var (
	// ErrGraphNil is returned when a nil graph is passed.
	ErrGraphNil = errors.New("equilibrium: graph is nil")

	// ErrNoScenarios is returned for an empty period-2 scenario set.
	ErrNoScenarios = game.ErrNoScenarios

	// ErrFocalNotFound is returned by SolveFocal for an unknown focal vertex.
	ErrFocalNotFound = errors.New("equilibrium: focal vertex not found")

	// ErrInvalidLocality is returned for a locality below FullDiameter.
	ErrInvalidLocality = errors.New("equilibrium: invalid locality")

	// ErrInfeasibleModel is returned when the backend reports infeasibility.
	// The all-zero profile is always feasible, so this signals a bug.
	ErrInfeasibleModel = errors.New("equilibrium: integer program infeasible")

	// ErrSolverFailure is returned for any other backend failure.
	ErrSolverFailure = errors.New("equilibrium: solver failure")
)

// Locality is the hop radius of the ego-networks used by SolveLocalized.
type Locality int

// FullDiameter disables the locality restriction: one solve on the whole graph.
const FullDiameter Locality = -1

// String renders FullDiameter as "full" and any radius as its number.
func (l Locality) String() string {
	if l == FullDiameter {
		return "full"
	}
	return strconv.Itoa(int(l))
}

// ParseLocality parses "full" (or "-1") and non-negative integers.
func ParseLocality(s string) (Locality, error) {
	if s == "full" {
		return FullDiameter, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(ErrInvalidLocality, err)
	}
	l := Locality(n)
	if l < FullDiameter {
		return 0, ErrInvalidLocality
	}
	return l, nil
}

// Result is the optimum of the sample-average program on one graph.
type Result struct {
	// Period1 is the optimal period-1 action of every vertex.
	Period1 game.Profile
	// Period2[s] is the optimal period-2 response to scenario s.
	Period2 []game.Profile
	// Objective is the optimal SAA objective value.
	Objective float64
	// Method is the backend algorithm that produced the optimum.
	Method mip.Method
}

// Option configures the solvers.
type Option func(*config)

type config struct {
	logger   zerolog.Logger
	mipOpts  []mip.Option
	workers  int
	checkTol float64
}

func newConfig(opts []Option) config {
	c := config{
		logger:   zerolog.Nop(),
		workers:  runtime.GOMAXPROCS(0),
		checkTol: 1e-6,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger sets the logger for solve events. The backend itself stays
// silent unless a mip.WithLogger option is passed via WithSolverOptions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSolverOptions forwards options to every mip.Solve call.
func WithSolverOptions(opts ...mip.Option) Option {
	return func(c *config) { c.mipOpts = append(c.mipOpts, opts...) }
}

// WithWorkers bounds the number of concurrent ego-network solves in
// SolveLocalized. n < 1 means one worker. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}
