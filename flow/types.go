package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Sentinel errors for network construction and max-flow runs.
var (
	// ErrSourceNotFound is returned when the source node index is out of range.
	ErrSourceNotFound = errors.New("flow: source node not found")

	// ErrSinkNotFound is returned when the sink node index is out of range.
	ErrSinkNotFound = errors.New("flow: sink node not found")

	// ErrSourceIsSink is returned when source and sink coincide.
	ErrSourceIsSink = errors.New("flow: source equals sink")

	// ErrNodeOutOfRange is returned by AddArc for an unknown endpoint.
	ErrNodeOutOfRange = errors.New("flow: node index out of range")
)

// EdgeError is returned when an arc has a negative or non-finite capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: invalid capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// FlowOptions configures all max-flow algorithms.
//   - Ctx: cancellation; checked once per phase and per augmentation.
//   - Epsilon: treat residual capacities ≤ Epsilon as zero (default 1e-9).
//   - Logger: receives one debug event per augmentation (default silent).
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
type FlowOptions struct {
	Ctx                  context.Context
	Epsilon              float64
	Logger               zerolog.Logger
	LevelRebuildInterval int
}

// DefaultOptions returns production-safe defaults: background context,
// Epsilon 1e-9, a disabled logger and no forced level rebuilds.
func DefaultOptions() FlowOptions {
	return FlowOptions{
		Ctx:     context.Background(),
		Epsilon: 1e-9,
		Logger:  zerolog.Nop(),
	}
}

// normalize fills zero-valued fields with defaults.
func (o *FlowOptions) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
}
