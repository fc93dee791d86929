package scheduler

import (
	"sort"

	"github.com/stitts-dev/tablesched/internal/model"
)

// XKey identifies a decision variable X[i,p,g]: "player plays game g
// in session i" (spec.md §4.3).
type XKey struct {
	Session int
	Player  int // index into the Players slice
	Game    string
}

// YKey identifies Y[i,g]: "game g runs as a table in session i".
type YKey struct {
	Session int
	Game    string
}

// VariableSpace is the pruned set of (i,p,g) and (i,g) pairs that may
// be nonzero, plus the bookkeeping the constraint and objective
// builders need to iterate it efficiently.
type VariableSpace struct {
	Players  []model.Player
	Games    map[string]model.Game
	Sessions []model.Session
	Eff      []map[string]EffectiveParams // [session][gameID]

	X map[XKey]struct{}
	Y map[YKey]struct{}

	// GamesBySession lists, per session, the present-and-fitting game
	// ids in stable sorted order (spec.md §4.4's G(i)).
	GamesBySession [][]string
	// PlayersBySession lists, per session, the attending player
	// indices in stable input order (spec.md §4.4's P(i)).
	PlayersBySession [][]int
	// OwnersByGame maps a game id to the indices of players who own
	// it, used for marking the owner in the extracted schedule.
	OwnersByGame map[string][]int
}

// Build enumerates the variable space from a normalized catalog and
// the effective-parameter map (spec.md §4.3).
func Build(players []model.Player, games map[string]model.Game, sessions []model.Session, eff []map[string]EffectiveParams) *VariableSpace {
	vs := &VariableSpace{
		Players:      players,
		Games:        games,
		Sessions:     sessions,
		Eff:          eff,
		X:            make(map[XKey]struct{}),
		Y:            make(map[YKey]struct{}),
		OwnersByGame: make(map[string][]int),
	}

	for pi, p := range players {
		for _, g := range p.Owns {
			vs.OwnersByGame[g] = append(vs.OwnersByGame[g], pi)
		}
	}

	vs.PlayersBySession = make([][]int, len(sessions))
	vs.GamesBySession = make([][]string, len(sessions))

	for i := range sessions {
		var attending []int
		for pi, p := range players {
			if p.Attends(i) {
				attending = append(attending, pi)
			}
		}
		vs.PlayersBySession[i] = attending

		present := presentGames(games, eff[i], players, attending)
		vs.GamesBySession[i] = present

		for _, g := range present {
			vs.Y[YKey{Session: i, Game: g}] = struct{}{}
			for _, pi := range attending {
				vs.X[XKey{Session: i, Player: pi, Game: g}] = struct{}{}
			}
		}
	}

	return vs
}

// presentGames returns, in sorted order, the game ids that fit
// session i and are present (some attending player owns them).
func presentGames(games map[string]model.Game, effForSession map[string]EffectiveParams, players []model.Player, attending []int) []string {
	var out []string
	for id := range games {
		ep, ok := effForSession[id]
		if !ok || !ep.Fits {
			continue
		}
		if !anyAttendeeOwns(players, attending, id) {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func anyAttendeeOwns(players []model.Player, attending []int, gameID string) bool {
	for _, pi := range attending {
		if players[pi].OwnsGame(gameID) {
			return true
		}
	}
	return false
}
