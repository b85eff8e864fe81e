package game

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/coordgame/core"
)

// Sentinel errors for model validation.
var (
	// ErrMissingReward indicates a vertex without a reward value.
	ErrMissingReward = errors.New("game: missing reward for vertex")

	// ErrMissingAction indicates a vertex without an action.
	ErrMissingAction = errors.New("game: missing action for vertex")

	// ErrInvalidBonus indicates a negative or non-finite agreement bonus.
	ErrInvalidBonus = errors.New("game: agreement bonus must be finite and >= 0")

	// ErrNoScenarios indicates an empty period-2 scenario set.
	ErrNoScenarios = errors.New("game: scenario set is empty")

	// ErrInvalidAction indicates an action value other than 0 or 1.
	ErrInvalidAction = errors.New("game: action must be 0 or 1")
)

// Action is a binary decision taken by a vertex in one period.
type Action uint8

const (
	// Off is action 0: the node reward does not accrue.
	Off Action = 0
	// On is action 1: the node reward accrues.
	On Action = 1
)

// Float returns the action as 0.0 or 1.0.
func (a Action) Float() float64 { return float64(a) }

// String implements fmt.Stringer.
func (a Action) String() string {
	if a == On {
		return "1"
	}
	return "0"
}

// ActionOf rounds a relaxed decision value to the nearest Action.
func ActionOf(v float64) Action {
	if v >= 0.5 {
		return On
	}
	return Off
}

// Profile assigns an Action to every vertex for one period.
type Profile map[string]Action

// Rewards assigns a scalar node reward to every vertex for one period.
type Rewards map[string]float64

// Scenarios is an ordered set of equally likely period-2 reward maps.
type Scenarios []Rewards

// ValidateBonus returns ErrInvalidBonus unless c is finite and non-negative.
func ValidateBonus(c float64) error {
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidBonus, c)
	}
	return nil
}

// Validate checks that r holds a finite value for every vertex of g.
func (r Rewards) Validate(g *core.Graph) error {
	for _, id := range g.Vertices() {
		v, ok := r[id]
		if !ok {
			return fmt.Errorf("%w %q", ErrMissingReward, id)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w %q: non-finite value %v", ErrMissingReward, id, v)
		}
	}
	return nil
}

// Restrict returns a copy of r holding only the vertices of g.
func (r Rewards) Restrict(g *core.Graph) Rewards {
	out := make(Rewards, g.VertexCount())
	for _, id := range g.Vertices() {
		if v, ok := r[id]; ok {
			out[id] = v
		}
	}
	return out
}

// Validate checks that s is non-empty and every scenario covers g.
func (s Scenarios) Validate(g *core.Graph) error {
	if len(s) == 0 {
		return ErrNoScenarios
	}
	for i, r := range s {
		if err := r.Validate(g); err != nil {
			return fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return nil
}

// Restrict returns a copy of s with every scenario restricted to g.
func (s Scenarios) Restrict(g *core.Graph) Scenarios {
	out := make(Scenarios, len(s))
	for i, r := range s {
		out[i] = r.Restrict(g)
	}
	return out
}

// Validate checks that x holds a binary action for every vertex of g.
func (x Profile) Validate(g *core.Graph) error {
	for _, id := range g.Vertices() {
		a, ok := x[id]
		if !ok {
			return fmt.Errorf("%w %q", ErrMissingAction, id)
		}
		if a != Off && a != On {
			return fmt.Errorf("%w: vertex %q has %d", ErrInvalidAction, id, a)
		}
	}
	return nil
}

// Restrict returns a copy of x holding only the vertices of g.
func (x Profile) Restrict(g *core.Graph) Profile {
	out := make(Profile, g.VertexCount())
	for _, id := range g.Vertices() {
		if a, ok := x[id]; ok {
			out[id] = a
		}
	}
	return out
}

// Ones returns the sorted IDs of vertices playing On.
func (x Profile) Ones() []string {
	ids := make([]string, 0, len(x))
	for id, a := range x {
		if a == On {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, core.CompareID)
	return ids
}

// String renders x as "id=a" pairs in natural vertex order.
func (x Profile) String() string {
	ids := make([]string, 0, len(x))
	for id := range x {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, core.CompareID)
	buf := make([]byte, 0, 4*len(ids))
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, id...)
		buf = append(buf, '=')
		buf = append(buf, x[id].String()...)
	}
	return string(buf)
}
