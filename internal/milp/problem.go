// Package milp is a small generic mixed-integer program builder and
// branch-and-bound solver, grounded on the retrieval pack's
// jjhbw/GoMILP (LP relaxation + branch and bound over gonum's simplex
// implementation) and wired to the teacher's already-required
// gonum.org/v1/gonum dependency.
//
// The scheduler builds one Problem per solve: variables for X[i,p,g],
// Y[i,g], and the popularity-linearization C[i,g,k] indicators, plus
// the constraints from spec.md §4.4 and the objective from §4.5.
package milp

import "fmt"

// Sense is a constraint's relational operator.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// Constraint is one linear row: sum(coeffs[j]*x[j]) <sense> RHS.
type Constraint struct {
	Name    string
	Coeffs  map[int]float64
	Sense   Sense
	RHS     float64
}

// Problem is a maximize-oriented 0/1 (or small-bounded integer) MIP.
// All variables have implicit lower bound 0; UpperBounds and Integer
// carry each variable's upper bound and whether it is
// integer-constrained.
type Problem struct {
	Names       []string
	UpperBounds []float64
	Integer     []bool
	Obj         []float64
	Constraints []Constraint
}

// NewProblem returns an empty problem.
func NewProblem() *Problem {
	return &Problem{}
}

// AddVar registers a new variable with bounds [0, ub] and returns its
// index. Binary decision variables (X, Y, C in spec.md §4) pass ub=1,
// integer=true.
func (p *Problem) AddVar(name string, ub float64, integer bool) int {
	idx := len(p.Names)
	p.Names = append(p.Names, name)
	p.UpperBounds = append(p.UpperBounds, ub)
	p.Integer = append(p.Integer, integer)
	p.Obj = append(p.Obj, 0)
	return idx
}

// AddObjTerm adds coeff to variable idx's objective coefficient,
// letting multiple contributions (interest + popularity) accumulate.
func (p *Problem) AddObjTerm(idx int, coeff float64) {
	p.Obj[idx] += coeff
}

// AddConstraint appends a linear constraint.
func (p *Problem) AddConstraint(name string, coeffs map[int]float64, sense Sense, rhs float64) {
	p.Constraints = append(p.Constraints, Constraint{Name: name, Coeffs: coeffs, Sense: sense, RHS: rhs})
}

// NumVars reports how many variables have been registered.
func (p *Problem) NumVars() int {
	return len(p.Names)
}

func (p *Problem) String() string {
	return fmt.Sprintf("milp.Problem{vars=%d, constraints=%d}", len(p.Names), len(p.Constraints))
}
