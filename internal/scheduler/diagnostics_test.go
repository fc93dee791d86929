package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/tablesched/internal/model"
)

func TestUnsatisfiableInterests_NoWarningWhenOwnerAttends(t *testing.T) {
	games := map[string]model.Game{
		"A": {ID: "A", MinPlayers: 2, MaxPlayers: 4, MinPlaytime: 30, MaxPlaytime: 60},
	}
	players := []model.Player{
		{Name: "Alice", Owns: []string{"A"}, Interests: []string{"A"}, Sessions: []int{0}},
		{Name: "Bob", Owns: nil, Interests: []string{"A"}, Sessions: []int{0}},
	}
	sessions := []model.Session{{Name: "morning", Length: 60}}
	eff := DeriveAll(games, sessions)
	vs := Build(players, games, sessions, eff)

	warnings := UnsatisfiableInterests(vs)
	assert.Empty(t, warnings, "Alice owns A and attends the only session it's present in, so both interests are satisfiable")
}

func TestUnsatisfiableInterests_FlagsInterestWithNoAttendingOwner(t *testing.T) {
	games := map[string]model.Game{
		"A": {ID: "A", MinPlayers: 2, MaxPlayers: 4, MinPlaytime: 30, MaxPlaytime: 60},
	}
	players := []model.Player{
		{Name: "Alice", Owns: []string{"A"}, Interests: nil, Sessions: []int{0}},
		{Name: "Bob", Owns: nil, Interests: []string{"A"}, Sessions: []int{1}},
	}
	sessions := []model.Session{
		{Name: "morning", Length: 60},
		{Name: "afternoon", Length: 60},
	}
	eff := DeriveAll(games, sessions)
	vs := Build(players, games, sessions, eff)

	warnings := UnsatisfiableInterests(vs)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "unsatisfiable interest")
	assert.Contains(t, warnings[0].Details, "Bob")
	assert.Contains(t, warnings[0].Details, "A")
}
