package evaluate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/coordgame/mip"
)

func TestBackendError(t *testing.T) {
	err := backendError(mip.ErrInfeasible)
	require.ErrorIs(t, err, ErrInfeasibleModel)
	require.ErrorIs(t, err, mip.ErrInfeasible)
	assert.NotErrorIs(t, err, ErrSolverFailure)

	err = backendError(errors.Join(mip.ErrSolverFailure, errors.New("numerical trouble")))
	require.ErrorIs(t, err, ErrSolverFailure)
	assert.NotErrorIs(t, err, ErrInfeasibleModel)
}
