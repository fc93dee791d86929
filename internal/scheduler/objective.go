package scheduler

import (
	"fmt"

	"github.com/stitts-dev/tablesched/internal/milp"
)

// addObjective assembles spec.md §4.5's weighted sum: interest
// satisfaction (weight 1 per X[i,p,g] where g is in p's interests)
// plus lambda times the linearized popularity term. It registers the
// per-count indicator variables C[i,g,k] and their linking
// constraints as part of building the objective, since they exist
// solely to make popularity linear.
func addObjective(prob *milp.Problem, vs *VariableSpace, idx *Indices, lambda float64) {
	interestSet := make(map[XKey]bool, len(vs.X))
	for pi, p := range vs.Players {
		interests := make(map[string]bool, len(p.Interests))
		for _, g := range p.Interests {
			interests[g] = true
		}
		for i := range vs.Sessions {
			for _, g := range vs.GamesBySession[i] {
				if interests[g] {
					interestSet[XKey{Session: i, Player: pi, Game: g}] = true
				}
			}
		}
	}

	for xk, xi := range idx.X {
		if interestSet[xk] {
			prob.AddObjTerm(xi, 1)
		}
	}

	for i, games := range vs.GamesBySession {
		for _, g := range games {
			addPopularityTerm(prob, vs, idx, i, g, lambda)
		}
	}
}

// addPopularityTerm introduces C[i,g,k] for k in [EMIN,EMAX] with:
//
//	sum_k C[i,g,k] = Y[i,g]
//	sum_p X[i,p,g] = sum_k k*C[i,g,k]
//
// and adds lambda*popularity(g,k)*C[i,g,k] to the objective, per
// spec.md §4.5.
func addPopularityTerm(prob *milp.Problem, vs *VariableSpace, idx *Indices, session int, game string, lambda float64) {
	ep := vs.Eff[session][game]
	yi := idx.Y[YKey{Session: session, Game: game}]

	sumC := map[int]float64{yi: -1}
	countLink := map[int]float64{}
	for _, pi := range vs.PlayersBySession[session] {
		if xi, ok := idx.X[XKey{Session: session, Player: pi, Game: game}]; ok {
			countLink[xi] = 1
		}
	}

	g := vs.Games[game]
	for k := ep.EMin; k <= ep.EMax; k++ {
		ci := prob.AddVar(fmt.Sprintf("C[%d,%s,%d]", session, game, k), 1, true)
		sumC[ci] = 1
		countLink[ci] = -float64(k)
		prob.AddObjTerm(ci, lambda*g.PopularityAt(k))
	}

	prob.AddConstraint(fmt.Sprintf("count-indicator-sum[%d,%s]", session, game), sumC, milp.EQ, 0)
	prob.AddConstraint(fmt.Sprintf("count-indicator-link[%d,%s]", session, game), countLink, milp.EQ, 0)
}
