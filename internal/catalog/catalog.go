// Package catalog implements spec.md §4.1's Catalog Normalizer: it
// turns the raw game list plus the set of ids referenced by players
// into a complete id -> model.Game mapping, synthesizing defaults for
// anything BGG never produced a record for.
package catalog

import "github.com/stitts-dev/tablesched/internal/model"

// Normalize builds the id -> Game lookup the rest of the scheduler
// reads from. referencedIDs is every game id that appears in any
// player's owns or interests; any such id missing from games gets
// model.DefaultGame.
func Normalize(games []model.Game, referencedIDs []string) map[string]model.Game {
	out := make(map[string]model.Game, len(games))
	for _, g := range games {
		out[g.ID] = g
	}

	seen := make(map[string]struct{}, len(referencedIDs))
	for _, id := range referencedIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := out[id]; !ok {
			out[id] = model.DefaultGame(id)
		}
	}
	return out
}

// ReferencedIDs collects every game id any player owns or is
// interested in, for use as Normalize's referencedIDs argument.
func ReferencedIDs(players []model.Player) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range players {
		for _, g := range p.Owns {
			add(g)
		}
		for _, g := range p.Interests {
			add(g)
		}
	}
	return ids
}
