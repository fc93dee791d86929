package scheduler

import "sort"

// Assignment is one player seated at one table.
type Assignment struct {
	Player string
	Owner  bool
}

// Table is one game running in one session.
type Table struct {
	Game        string
	Assignments []Assignment
}

// SessionBlock is the ordered set of tables running in one session.
type SessionBlock struct {
	Session string
	Tables  []Table
}

// Schedule is the full solved convention, one block per session in
// input order (spec.md §6's output shape).
type Schedule struct {
	Blocks []SessionBlock
}

// extractSchedule reads the solved X values back into a Schedule,
// per spec.md §4.6's solution extraction: group by game the players
// assigned in each session, flagging owners.
func extractSchedule(vs *VariableSpace, idx *Indices, values []float64) Schedule {
	owner := make(map[string]map[int]bool, len(vs.OwnersByGame))
	for g, owners := range vs.OwnersByGame {
		set := make(map[int]bool, len(owners))
		for _, pi := range owners {
			set[pi] = true
		}
		owner[g] = set
	}

	sched := Schedule{Blocks: make([]SessionBlock, len(vs.Sessions))}
	for i, s := range vs.Sessions {
		block := SessionBlock{Session: s.Name}
		for _, g := range vs.GamesBySession[i] {
			yi, ok := idx.Y[YKey{Session: i, Game: g}]
			if !ok || values[yi] < 0.5 {
				continue
			}

			var assignments []Assignment
			for _, pi := range vs.PlayersBySession[i] {
				xi, ok := idx.X[XKey{Session: i, Player: pi, Game: g}]
				if !ok || values[xi] < 0.5 {
					continue
				}
				assignments = append(assignments, Assignment{
					Player: vs.Players[pi].Name,
					Owner:  owner[g][pi],
				})
			}
			sort.Slice(assignments, func(a, b int) bool {
				return assignments[a].Player < assignments[b].Player
			})
			block.Tables = append(block.Tables, Table{Game: g, Assignments: assignments})
		}
		sort.Slice(block.Tables, func(a, b int) bool {
			return block.Tables[a].Game < block.Tables[b].Game
		})
		sched.Blocks[i] = block
	}
	return sched
}
