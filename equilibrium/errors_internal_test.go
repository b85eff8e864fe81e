package equilibrium

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/mip"
)

func TestBackendError(t *testing.T) {
	err := backendError(fmt.Errorf("Solve(%q): %w", "saa", mip.ErrInfeasible))
	require.ErrorIs(t, err, ErrInfeasibleModel)
	require.ErrorIs(t, err, mip.ErrInfeasible)
	assert.NotErrorIs(t, err, ErrSolverFailure)

	err = backendError(errors.Join(mip.ErrSolverFailure, errors.New("node limit 1 reached")))
	require.ErrorIs(t, err, ErrSolverFailure)
	assert.NotErrorIs(t, err, ErrInfeasibleModel)
}

func TestAgrees(t *testing.T) {
	assert.True(t, agrees(6, 6+1e-9, 1e-6))
	assert.True(t, agrees(1e6, 1e6+0.5, 1e-6))
	assert.False(t, agrees(6, 6.01, 1e-6))
	assert.False(t, agrees(0, 1e-5, 1e-6))
}
