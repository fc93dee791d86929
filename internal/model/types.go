// Package model holds the plain data types that flow through the
// scheduler: games, players, sessions, and the shared-game and
// table-limit declarations that bound a solve.
package model

// Game is a catalog entry: a board or card game with a player-count
// range, a playtime range, and a popularity curve over player counts.
type Game struct {
	ID          string          `json:"name"`
	FullName    string          `json:"full_name"`
	MinPlayers  int             `json:"min_players"`
	MaxPlayers  int             `json:"max_players"`
	MinPlaytime int             `json:"min_playtime"`
	MaxPlaytime int             `json:"max_playtime"`
	Popularity  map[int]float64 `json:"popularity"`
}

// defaultGame is substituted for any id referenced by a player but
// absent from the catalog (spec §3).
func defaultGame(id string) Game {
	return Game{
		ID:          id,
		FullName:    id,
		MinPlayers:  3,
		MaxPlayers:  4,
		MinPlaytime: 240,
		MaxPlaytime: 240,
		Popularity:  map[int]float64{3: 1.0, 4: 1.0},
	}
}

// DefaultGame exposes defaultGame to other packages without letting
// them construct an ad-hoc default that drifts from the catalog's.
func DefaultGame(id string) Game {
	return defaultGame(id)
}

// PopularityAt returns the popularity weight at a player count, 0 if
// the count was never recorded for this game.
func (g Game) PopularityAt(count int) float64 {
	if w, ok := g.Popularity[count]; ok {
		return w
	}
	return 0
}

// Player is a convention attendee.
type Player struct {
	Name      string   `json:"name"`
	Owns      []string `json:"owns"`
	Interests []string `json:"interests"`
	Sessions  []int    `json:"sessions"`
}

// OwnsGame reports whether the player can bring a copy of g.
func (p Player) OwnsGame(g string) bool {
	for _, owned := range p.Owns {
		if owned == g {
			return true
		}
	}
	return false
}

// Attends reports whether the player attends session i.
func (p Player) Attends(i int) bool {
	for _, s := range p.Sessions {
		if s == i {
			return true
		}
	}
	return false
}

// Session is a contiguous block of convention time.
type Session struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// SharedGame caps the number of tables of a game that may run across
// the whole convention, modeling a limited number of physical copies.
type SharedGame struct {
	GameID string
	Cap    int
}
