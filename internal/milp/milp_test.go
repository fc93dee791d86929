package milp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_SimpleKnapsack(t *testing.T) {
	// maximize 3x0 + 4x1 + 2x2 s.t. x0+x1+x2 <= 2, binary.
	p := NewProblem()
	x0 := p.AddVar("x0", 1, true)
	x1 := p.AddVar("x1", 1, true)
	x2 := p.AddVar("x2", 1, true)
	p.AddObjTerm(x0, 3)
	p.AddObjTerm(x1, 4)
	p.AddObjTerm(x2, 2)
	p.AddConstraint("capacity", map[int]float64{x0: 1, x1: 1, x2: 1}, LE, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sol, err := p.Solve(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, sol.Objective, 1e-6)
	assert.InDelta(t, 1.0, sol.Values[x0], 1e-6)
	assert.InDelta(t, 1.0, sol.Values[x1], 1e-6)
	assert.InDelta(t, 0.0, sol.Values[x2], 1e-6)
}

func TestSolve_Infeasible(t *testing.T) {
	p := NewProblem()
	x0 := p.AddVar("x0", 1, true)
	p.AddObjTerm(x0, 1)
	// x0 == 1 and x0 == 0 simultaneously: no feasible point.
	p.AddConstraint("eq1", map[int]float64{x0: 1}, EQ, 1)
	p.AddConstraint("eq0", map[int]float64{x0: 1}, EQ, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := p.Solve(ctx)
	assert.ErrorIs(t, err, ErrInfeasible)
}
