package scheduler

import (
	"fmt"
	"sort"

	"github.com/stitts-dev/tablesched/internal/milp"
	"github.com/stitts-dev/tablesched/internal/model"
)

// addConstraints emits the seven constraint classes of spec.md §4.4.
// Ownership per session (class 8) is already enforced by pruning in
// the variable space builder, so it has no constraint rows here.
func addConstraints(prob *milp.Problem, vs *VariableSpace, idx *Indices, shared []model.SharedGame, tableLimit int) {
	addCoverage(prob, vs, idx)
	addPlayOnce(prob, vs, idx)
	addTableActivation(prob, vs, idx)
	addCountBounds(prob, vs, idx)
	addTableLimit(prob, vs, idx, tableLimit)
	addSharedGameCaps(prob, vs, idx, shared)
}

// addCoverage: for each player and each session they attend, they
// play exactly one game (spec.md §4.4 class 1).
func addCoverage(prob *milp.Problem, vs *VariableSpace, idx *Indices) {
	for i, players := range vs.PlayersBySession {
		for _, pi := range players {
			coeffs := map[int]float64{}
			for _, g := range vs.GamesBySession[i] {
				if xi, ok := idx.X[XKey{Session: i, Player: pi, Game: g}]; ok {
					coeffs[xi] = 1
				}
			}
			name := fmt.Sprintf("coverage[%d,%s]", i, vs.Players[pi].Name)
			prob.AddConstraint(name, coeffs, milp.EQ, 1)
		}
	}
}

// addPlayOnce: a player plays a given game at most once across the
// whole convention (class 2).
func addPlayOnce(prob *milp.Problem, vs *VariableSpace, idx *Indices) {
	type pg struct {
		player int
		game   string
	}
	grouped := map[pg]map[int]float64{}

	for i, players := range vs.PlayersBySession {
		for _, pi := range players {
			for _, g := range vs.GamesBySession[i] {
				xi, ok := idx.X[XKey{Session: i, Player: pi, Game: g}]
				if !ok {
					continue
				}
				key := pg{player: pi, game: g}
				if grouped[key] == nil {
					grouped[key] = map[int]float64{}
				}
				grouped[key][xi] = 1
			}
		}
	}

	// Emit rows in a fixed order so reruns build the same problem.
	keys := make([]pg, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].player != keys[b].player {
			return keys[a].player < keys[b].player
		}
		return keys[a].game < keys[b].game
	})
	for _, key := range keys {
		name := fmt.Sprintf("play-once[%s,%s]", vs.Players[key.player].Name, key.game)
		prob.AddConstraint(name, grouped[key], milp.LE, 1)
	}
}

// addTableActivation: X[i,p,g] <= Y[i,g] for every materialized X
// (class 3).
func addTableActivation(prob *milp.Problem, vs *VariableSpace, idx *Indices) {
	for i, players := range vs.PlayersBySession {
		for _, g := range vs.GamesBySession[i] {
			yi, ok := idx.Y[YKey{Session: i, Game: g}]
			if !ok {
				continue
			}
			for _, pi := range players {
				xi, ok := idx.X[XKey{Session: i, Player: pi, Game: g}]
				if !ok {
					continue
				}
				name := fmt.Sprintf("activation[%d,%s,%s]", i, vs.Players[pi].Name, g)
				prob.AddConstraint(name, map[int]float64{xi: 1, yi: -1}, milp.LE, 0)
			}
		}
	}
}

// addCountBounds: EMIN*Y <= sum(X) <= EMAX*Y for every active (i,g)
// (classes 4 and 5).
func addCountBounds(prob *milp.Problem, vs *VariableSpace, idx *Indices) {
	for i, players := range vs.PlayersBySession {
		for _, g := range vs.GamesBySession[i] {
			yi, ok := idx.Y[YKey{Session: i, Game: g}]
			if !ok {
				continue
			}
			ep := vs.Eff[i][g]

			// sum_p X[i,p,g] - EMIN*Y[i,g] >= 0
			lowerCoeffs := map[int]float64{yi: -float64(ep.EMin)}
			// sum_p X[i,p,g] - EMAX*Y[i,g] <= 0
			upperCoeffs := map[int]float64{yi: -float64(ep.EMax)}
			for _, pi := range players {
				xi, ok := idx.X[XKey{Session: i, Player: pi, Game: g}]
				if !ok {
					continue
				}
				lowerCoeffs[xi] = 1
				upperCoeffs[xi] = 1
			}

			prob.AddConstraint(fmt.Sprintf("count-min[%d,%s]", i, g), lowerCoeffs, milp.GE, 0)
			prob.AddConstraint(fmt.Sprintf("count-max[%d,%s]", i, g), upperCoeffs, milp.LE, 0)
		}
	}
}

// addTableLimit: at most T distinct tables run per session (class 6).
func addTableLimit(prob *milp.Problem, vs *VariableSpace, idx *Indices, tableLimit int) {
	for i, games := range vs.GamesBySession {
		coeffs := map[int]float64{}
		for _, g := range games {
			if yi, ok := idx.Y[YKey{Session: i, Game: g}]; ok {
				coeffs[yi] = 1
			}
		}
		if len(coeffs) == 0 {
			continue
		}
		prob.AddConstraint(fmt.Sprintf("table-limit[%d]", i), coeffs, milp.LE, float64(tableLimit))
	}
}

// addSharedGameCaps: sum_i Y[i,g] <= cap for each shared-game
// declaration, default cap 1 (class 7).
func addSharedGameCaps(prob *milp.Problem, vs *VariableSpace, idx *Indices, shared []model.SharedGame) {
	for _, decl := range shared {
		cap := decl.Cap
		if cap <= 0 {
			cap = 1
		}
		coeffs := map[int]float64{}
		for i, games := range vs.GamesBySession {
			for _, g := range games {
				if g != decl.GameID {
					continue
				}
				if yi, ok := idx.Y[YKey{Session: i, Game: g}]; ok {
					coeffs[yi] = 1
				}
			}
		}
		if len(coeffs) == 0 {
			continue
		}
		prob.AddConstraint(fmt.Sprintf("shared-cap[%s]", decl.GameID), coeffs, milp.LE, float64(cap))
	}
}
