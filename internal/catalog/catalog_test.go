package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/tablesched/internal/model"
)

func TestNormalize_KnownGamePassesThrough(t *testing.T) {
	games := []model.Game{
		{ID: "catan", MinPlayers: 3, MaxPlayers: 4, MinPlaytime: 60, MaxPlaytime: 120, Popularity: map[int]float64{4: 1.0}},
	}

	out := Normalize(games, []string{"catan"})
	require.Contains(t, out, "catan")
	assert.Equal(t, 3, out["catan"].MinPlayers)
	assert.Equal(t, 1.0, out["catan"].PopularityAt(4))
	assert.Equal(t, float64(0), out["catan"].PopularityAt(2))
}

func TestNormalize_UnknownGameGetsDefaults(t *testing.T) {
	out := Normalize(nil, []string{"mystery-game"})
	require.Contains(t, out, "mystery-game")

	g := out["mystery-game"]
	assert.Equal(t, 3, g.MinPlayers)
	assert.Equal(t, 4, g.MaxPlayers)
	assert.Equal(t, 240, g.MinPlaytime)
	assert.Equal(t, 240, g.MaxPlaytime)
	assert.Equal(t, 1.0, g.PopularityAt(3))
	assert.Equal(t, 1.0, g.PopularityAt(4))
}

func TestReferencedIDs_DedupsAcrossOwnsAndInterests(t *testing.T) {
	players := []model.Player{
		{Name: "A", Owns: []string{"x", "y"}, Interests: []string{"y", "z"}},
		{Name: "B", Owns: []string{"x"}},
	}

	ids := ReferencedIDs(players)
	assert.ElementsMatch(t, []string{"x", "y", "z"}, ids)
}
