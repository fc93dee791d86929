package scheduler

import "github.com/stitts-dev/tablesched/internal/milp"

// Indices maps the scheduler's (session, player, game) and
// (session, game) keys to the column indices of the underlying MIP.
type Indices struct {
	X map[XKey]int
	Y map[YKey]int
}

// registerVariables adds one binary column per materialized X and Y
// variable in the space (spec.md §4.3).
func registerVariables(prob *milp.Problem, vs *VariableSpace) *Indices {
	idx := &Indices{
		X: make(map[XKey]int, len(vs.X)),
		Y: make(map[YKey]int, len(vs.Y)),
	}

	for i, games := range vs.GamesBySession {
		for _, g := range games {
			yk := YKey{Session: i, Game: g}
			idx.Y[yk] = prob.AddVar(yVarName(yk, vs), 1, true)
		}
	}

	for i, players := range vs.PlayersBySession {
		games := vs.GamesBySession[i]
		for _, pi := range players {
			for _, g := range games {
				xk := XKey{Session: i, Player: pi, Game: g}
				if _, ok := vs.X[xk]; !ok {
					continue
				}
				idx.X[xk] = prob.AddVar(xVarName(xk, vs), 1, true)
			}
		}
	}

	return idx
}

func xVarName(k XKey, vs *VariableSpace) string {
	return "X[" + vs.Sessions[k.Session].Name + "," + vs.Players[k.Player].Name + "," + k.Game + "]"
}

func yVarName(k YKey, vs *VariableSpace) string {
	return "Y[" + vs.Sessions[k.Session].Name + "," + k.Game + "]"
}
