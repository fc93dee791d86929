package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfeasible_IsModelInfeasible(t *testing.T) {
	err := Infeasible("session 0 is over-subscribed")
	assert.True(t, errors.Is(err, ErrModelInfeasible))
	assert.Contains(t, err.Error(), "over-subscribed")
}

func TestSolver_WrapsCause(t *testing.T) {
	cause := errors.New("time limit exceeded")
	err := Solver(cause)
	assert.True(t, errors.Is(err, ErrSolver))
	assert.Contains(t, err.Error(), "time limit exceeded")
}
