package scheduler

import (
	"fmt"

	"github.com/stitts-dev/tablesched/internal/apperror"
)

// UnsatisfiableInterests implements spec.md §7's third
// InputConsistencyError case: a player interested in a game that no
// owner ever brings to any session the player attends. A game that
// has an attending owner but does not fit any of those sessions is
// flagged the same way, since it is never playable either. It is a
// warning, not a solver failure — per spec.md §9's Open Question
// resolution, an unsatisfiable interest simply never contributes to
// the objective, it does not block the solve.
func UnsatisfiableInterests(vs *VariableSpace) []*apperror.Error {
	var warnings []*apperror.Error
	for pi, p := range vs.Players {
		for _, g := range p.Interests {
			if satisfiableInterest(vs, pi, g) {
				continue
			}
			warnings = append(warnings, apperror.InputConsistency(
				"unsatisfiable interest",
				fmt.Sprintf("player %q is interested in %q but no attended session has an owner present and enough time for it", p.Name, g),
			))
		}
	}
	return warnings
}

// satisfiableInterest reports whether gameID is present in any session
// player attends, i.e. whether X[i,player,gameID] could ever be 1.
func satisfiableInterest(vs *VariableSpace, player int, gameID string) bool {
	for i := range vs.Sessions {
		if !vs.Players[player].Attends(i) {
			continue
		}
		for _, g := range vs.GamesBySession[i] {
			if g == gameID {
				return true
			}
		}
	}
	return false
}
