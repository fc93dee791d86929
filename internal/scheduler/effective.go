// Package scheduler builds and solves the MIP described in spec.md
// §4: effective per-session player-count bounds, the pruned decision
// variable space, the constraint set, the weighted objective, and the
// solver orchestration that turns a solution back into a schedule.
package scheduler

import (
	"math"

	"github.com/stitts-dev/tablesched/internal/model"
)

// EffectiveParams is the per-(session, game) derived bound pair from
// spec.md §4.2.
type EffectiveParams struct {
	Fits bool
	EMin int
	EMax int
}

// DeriveEffective computes spec.md §4.2's fit check and EMIN/EMAX for
// one (game, session) pair.
func DeriveEffective(g model.Game, s model.Session) EffectiveParams {
	if g.MinPlaytime > s.Length {
		return EffectiveParams{Fits: false}
	}

	emin := g.MinPlayers
	emax := effectiveMax(g, s)
	return EffectiveParams{Fits: true, EMin: emin, EMax: emax}
}

// effectiveMax implements the linear interpolation in spec.md §4.2,
// floored and clamped to [min_players, max_players].
func effectiveMax(g model.Game, s model.Session) int {
	switch {
	case s.Length >= g.MaxPlaytime:
		return g.MaxPlayers
	case s.Length <= g.MinPlaytime:
		return g.MinPlayers
	}

	span := g.MaxPlaytime - g.MinPlaytime
	frac := float64(s.Length-g.MinPlaytime) / float64(span)
	raw := float64(g.MinPlayers) + float64(g.MaxPlayers-g.MinPlayers)*frac
	emax := int(math.Floor(raw))

	if emax < g.MinPlayers {
		emax = g.MinPlayers
	}
	if emax > g.MaxPlayers {
		emax = g.MaxPlayers
	}
	return emax
}

// DeriveAll computes EffectiveParams for every (game, session) pair in
// the catalog, keyed [sessionIndex][gameID].
func DeriveAll(catalog map[string]model.Game, sessions []model.Session) []map[string]EffectiveParams {
	out := make([]map[string]EffectiveParams, len(sessions))
	for i, s := range sessions {
		perGame := make(map[string]EffectiveParams, len(catalog))
		for id, g := range catalog {
			perGame[id] = DeriveEffective(g, s)
		}
		out[i] = perGame
	}
	return out
}
