package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tablesched/internal/model"
)

func solveWithTimeout(t *testing.T, games []model.Game, players []model.Player, sessions []model.Session, opts Options) (*Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return Solve(ctx, games, players, sessions, opts)
}

// Scenario 1: trivial — everyone ends up at the only table.
func TestScenario_Trivial(t *testing.T) {
	games := []model.Game{{ID: "X", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 240, MaxPlaytime: 240, Popularity: map[int]float64{3: 0.8, 4: 1.0}}}
	players := []model.Player{
		{Name: "A", Owns: []string{"X"}, Sessions: []int{0}},
		{Name: "B", Owns: []string{"X"}, Sessions: []int{0}},
		{Name: "C", Owns: []string{"X"}, Sessions: []int{0}},
	}
	sessions := []model.Session{{Name: "S1", Length: 240}}

	res, err := solveWithTimeout(t, games, players, sessions, Options{})
	require.NoError(t, err)
	require.Len(t, res.Schedule.Blocks, 1)
	require.Len(t, res.Schedule.Blocks[0].Tables, 1)
	table := res.Schedule.Blocks[0].Tables[0]
	assert.Equal(t, "X", table.Game)
	assert.Len(t, table.Assignments, 3)
}

// Scenario 3: a game whose min playtime exceeds a short session never
// appears in that session's variable space. A filler game that fits
// every session keeps the short session itself feasible, since
// coverage requires every attending player to play something.
func TestScenario_SessionLengthExcludesGame(t *testing.T) {
	games := []model.Game{
		{ID: "L", MinPlayers: 3, MaxPlayers: 5, MinPlaytime: 300, MaxPlaytime: 420, Popularity: map[int]float64{3: 1, 4: 1, 5: 1}},
		{ID: "F", MinPlayers: 3, MaxPlayers: 5, MinPlaytime: 30, MaxPlaytime: 420, Popularity: map[int]float64{3: 1, 4: 1, 5: 1}},
	}
	players := []model.Player{
		{Name: "A", Owns: []string{"L", "F"}, Sessions: []int{0, 1}},
		{Name: "B", Owns: []string{"L", "F"}, Sessions: []int{0, 1}},
		{Name: "C", Owns: []string{"L", "F"}, Sessions: []int{0, 1}},
	}
	sessions := []model.Session{
		{Name: "short", Length: 180},
		{Name: "long", Length: 360},
	}

	res, err := solveWithTimeout(t, games, players, sessions, Options{})
	require.NoError(t, err)

	shortBlock := res.Schedule.Blocks[0]
	for _, table := range shortBlock.Tables {
		assert.NotEqual(t, "L", table.Game, "game L must not appear in the too-short session")
	}
}

// Scenario 5: a shared-game cap of 1 limits the game to one session
// even though multiple sessions could otherwise host it. Two filler
// games with no cap keep the other two sessions feasible: play-once
// stops a player from repeating a filler in a second session.
func TestScenario_SharedGameCap(t *testing.T) {
	games := []model.Game{
		{ID: "S", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 120, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}},
		{ID: "F", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 30, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}},
		{ID: "G", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 30, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}},
	}
	players := []model.Player{
		{Name: "A", Owns: []string{"S", "F", "G"}, Sessions: []int{0, 1, 2}},
		{Name: "B", Owns: []string{"S", "F", "G"}, Sessions: []int{0, 1, 2}},
		{Name: "C", Owns: []string{"S", "F", "G"}, Sessions: []int{0, 1, 2}},
	}
	sessions := []model.Session{
		{Name: "morning", Length: 240},
		{Name: "afternoon", Length: 240},
		{Name: "evening", Length: 240},
	}

	res, err := solveWithTimeout(t, games, players, sessions, Options{
		SharedGames: []model.SharedGame{{GameID: "S", Cap: 1}},
	})
	require.NoError(t, err)

	activeSessions := 0
	for _, block := range res.Schedule.Blocks {
		for _, table := range block.Tables {
			if table.Game == "S" {
				activeSessions++
			}
		}
	}
	assert.LessOrEqual(t, activeSessions, 1)
}

// Scenario 6: 20 players chasing one 4-player-max game in a single
// session is infeasible and must be diagnosed as over-subscribed.
func TestScenario_InfeasibleOversubscription(t *testing.T) {
	games := []model.Game{{ID: "X", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 240, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}}}

	var players []model.Player
	for i := 0; i < 20; i++ {
		players = append(players, model.Player{Name: playerName(i), Owns: []string{"X"}, Sessions: []int{0}})
	}
	sessions := []model.Session{{Name: "S1", Length: 240}}

	_, err := solveWithTimeout(t, games, players, sessions, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "over-subscribed")
}

func playerName(i int) string {
	return "p" + string(rune('A'+i))
}

// Property: coverage — every attending player appears in exactly one
// table of every session they attend.
func TestProperty_Coverage(t *testing.T) {
	games := []model.Game{
		{ID: "X", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 60, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}},
		{ID: "Y", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 60, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}},
	}
	players := []model.Player{
		{Name: "A", Owns: []string{"X"}, Interests: []string{"X"}, Sessions: []int{0}},
		{Name: "B", Owns: []string{"X"}, Interests: []string{"X"}, Sessions: []int{0}},
		{Name: "C", Owns: []string{"X"}, Interests: []string{"X"}, Sessions: []int{0}},
		{Name: "D", Owns: []string{"Y"}, Interests: []string{"X"}, Sessions: []int{0}},
		{Name: "E", Owns: []string{"Y"}, Interests: []string{"Y"}, Sessions: []int{0}},
		{Name: "F", Owns: []string{"Y"}, Interests: []string{"Y"}, Sessions: []int{0}},
	}
	sessions := []model.Session{{Name: "S1", Length: 240}}

	res, err := solveWithTimeout(t, games, players, sessions, Options{})
	require.NoError(t, err)

	seen := map[string]int{}
	for _, table := range res.Schedule.Blocks[0].Tables {
		for _, a := range table.Assignments {
			seen[a.Player]++
		}
	}
	for _, p := range players {
		assert.Equal(t, 1, seen[p.Name], "player %s must appear exactly once", p.Name)
	}
}

// Property: ownership — every active table has at least one assigned
// player who owns the game being played.
func TestProperty_Ownership(t *testing.T) {
	games := []model.Game{{ID: "X", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 60, MaxPlaytime: 240, Popularity: map[int]float64{3: 1, 4: 1}}}
	players := []model.Player{
		{Name: "A", Owns: []string{"X"}, Sessions: []int{0}},
		{Name: "B", Sessions: []int{0}},
		{Name: "C", Sessions: []int{0}},
	}
	sessions := []model.Session{{Name: "S1", Length: 240}}

	res, err := solveWithTimeout(t, games, players, sessions, Options{})
	require.NoError(t, err)

	for _, table := range res.Schedule.Blocks[0].Tables {
		ownerPresent := false
		for _, a := range table.Assignments {
			if a.Owner {
				ownerPresent = true
			}
		}
		assert.True(t, ownerPresent, "table %s must have an owner present", table.Game)
	}
}
