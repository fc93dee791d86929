package milp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInfeasible means the MIP (not just one relaxation) has no
// integer-feasible solution — spec.md §7's ModelInfeasible.
var ErrInfeasible = errors.New("no integer-feasible solution")

const integralityTolerance = 1e-6

// Solution is the extracted optimum: Values is indexed like
// Problem.Names, Objective is the true (maximized) objective value.
type Solution struct {
	Values    []float64
	Objective float64
}

// boundRow is one node-local inequality: coeffs[varIdx] <= rhs.
type boundRow struct {
	varIdx int
	coeff  float64
	rhs    float64
}

type node struct {
	extra []boundRow
}

// Solve runs branch-and-bound to an integer optimum, or returns
// ErrInfeasible if no branch yields an integer-feasible point. ctx's
// deadline, if any, bounds the search; on expiry the best incumbent
// found so far (if any) is returned without error, matching a
// solver's own time-limit knob rather than a hard failure.
func (p *Problem) Solve(ctx context.Context) (*Solution, error) {
	baseG, baseH := p.baseInequalities()
	baseA, baseB := p.baseEqualities()

	c := make([]float64, len(p.Obj))
	for i, v := range p.Obj {
		c[i] = -v // gonum's Simplex minimizes; we maximize.
	}

	var incumbent *Solution
	incumbentVal := math.Inf(1) // tracks minimized c^T x of best integer point

	queue := []node{{}}
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			if incumbent != nil {
				return incumbent, nil
			}
			return nil, fmt.Errorf("milp: %w", ctx.Err())
		default:
		}

		n := queue[0]
		queue = queue[1:]

		G, h := appendRows(baseG, baseH, n.extra)
		x, relaxF, ok := solveRelaxation(c, baseA, baseB, G, h, len(p.Names))
		if !ok {
			continue // relaxation infeasible, prune
		}
		if incumbent != nil && relaxF >= incumbentVal-1e-9 {
			continue // bound pruning: relaxation can't beat the incumbent
		}

		fracIdx, fracVal, isInteger := firstFractional(p.Integer, x)
		if isInteger {
			incumbent = &Solution{Values: x, Objective: -relaxF}
			incumbentVal = relaxF
			continue
		}

		floorRow := boundRow{varIdx: fracIdx, coeff: 1, rhs: math.Floor(fracVal)}
		ceilRow := boundRow{varIdx: fracIdx, coeff: -1, rhs: -math.Ceil(fracVal)}
		queue = append(queue,
			node{extra: append(append([]boundRow{}, n.extra...), floorRow)},
			node{extra: append(append([]boundRow{}, n.extra...), ceilRow)},
		)
	}

	if incumbent == nil {
		return nil, ErrInfeasible
	}
	return incumbent, nil
}

// baseInequalities converts every LE/GE Constraint plus each
// variable's upper bound into <= rows.
func (p *Problem) baseInequalities() ([][]float64, []float64) {
	n := len(p.Names)
	var G [][]float64
	var h []float64

	for _, c := range p.Constraints {
		switch c.Sense {
		case LE:
			G = append(G, denseRow(n, c.Coeffs, 1))
			h = append(h, c.RHS)
		case GE:
			G = append(G, denseRow(n, c.Coeffs, -1))
			h = append(h, -c.RHS)
		}
	}

	for j, ub := range p.UpperBounds {
		row := make([]float64, n)
		row[j] = 1
		G = append(G, row)
		h = append(h, ub)
	}

	return G, h
}

func (p *Problem) baseEqualities() ([][]float64, []float64) {
	n := len(p.Names)
	var A [][]float64
	var b []float64
	for _, c := range p.Constraints {
		if c.Sense == EQ {
			A = append(A, denseRow(n, c.Coeffs, 1))
			b = append(b, c.RHS)
		}
	}
	return A, b
}

func denseRow(n int, coeffs map[int]float64, scale float64) []float64 {
	row := make([]float64, n)
	for idx, v := range coeffs {
		row[idx] = v * scale
	}
	return row
}

func appendRows(baseG [][]float64, baseH []float64, extra []boundRow) ([][]float64, []float64) {
	if len(extra) == 0 {
		return baseG, baseH
	}
	n := 0
	if len(baseG) > 0 {
		n = len(baseG[0])
	}
	G := append([][]float64{}, baseG...)
	h := append([]float64{}, baseH...)
	for _, e := range extra {
		if n == 0 {
			n = e.varIdx + 1
		}
		row := make([]float64, n)
		row[e.varIdx] = e.coeff
		G = append(G, row)
		h = append(h, e.rhs)
	}
	return G, h
}

// solveRelaxation converts (A,b,G,h) to the equality standard form
// gonum's Simplex requires (slack variable per inequality row) and
// solves it, mirroring jjhbw/GoMILP's toInitialSubproblem.
func solveRelaxation(c []float64, A [][]float64, b []float64, G [][]float64, h []float64, numVars int) ([]float64, float64, bool) {
	numSlack := len(G)
	total := numVars + numSlack

	rows := len(A) + len(G)
	data := make([]float64, rows*total)
	rhs := make([]float64, rows)

	row := 0
	for i, a := range A {
		copy(data[row*total:row*total+numVars], a)
		rhs[row] = b[i]
		row++
	}
	for i, g := range G {
		copy(data[row*total:row*total+numVars], g)
		data[row*total+numVars+i] = 1 // slack
		rhs[row] = h[i]
		row++
	}

	cFull := make([]float64, total)
	copy(cFull, c)

	if rows == 0 {
		// No constraints at all: trivial optimum at the origin.
		return make([]float64, numVars), 0, true
	}

	Amat := mat.NewDense(rows, total, data)
	optF, optX, err := lp.Simplex(cFull, Amat, rhs, 0, nil)
	if err != nil {
		return nil, 0, false
	}
	return optX[:numVars], optF, true
}

// firstFractional returns the lowest-indexed integer-flagged variable
// whose relaxed value isn't within tolerance of an integer, so branch
// order (and therefore tie-breaking among equal-objective schedules)
// is deterministic across reruns, per spec.md §9.
func firstFractional(integer []bool, x []float64) (int, float64, bool) {
	indices := make([]int, 0, len(integer))
	for i, isInt := range integer {
		if isInt {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)

	for _, i := range indices {
		frac := x[i] - math.Floor(x[i])
		if frac > integralityTolerance && frac < 1-integralityTolerance {
			return i, x[i], false
		}
	}
	return -1, 0, true
}
