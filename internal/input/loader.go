// Package input reads the three JSON input files (games, sessions,
// players) into model types, surfacing malformed JSON as
// apperror.InputParse and structural problems as
// apperror.InputConsistency warnings, per spec.md §7.
package input

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stitts-dev/tablesched/internal/apperror"
	"github.com/stitts-dev/tablesched/internal/model"
)

// gameRecord mirrors games.json's on-disk shape (spec.md §6); id and
// owned are accepted but unused by the core.
type gameRecord struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	FullName    string             `json:"full_name"`
	MinPlayers  int                `json:"min_players"`
	MaxPlayers  int                `json:"max_players"`
	MinPlaytime int                `json:"min_playtime"`
	MaxPlaytime int                `json:"max_playtime"`
	Popularity  map[string]float64 `json:"popularity"`
	Owned       int                `json:"owned"`
}

type sessionRecord struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

type playerRecord struct {
	Name      string   `json:"name"`
	Owns      []string `json:"owns"`
	Interests []string `json:"interests"`
	Sessions  []int    `json:"sessions"`
}

// LoadGames reads games.json into a slice of model.Game with string
// player-count keys converted to ints. Malformed JSON is returned as
// an *apperror.Error of kind InputParse.
func LoadGames(path string) ([]model.Game, error) {
	var records []gameRecord
	if err := readJSON(path, &records); err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			return nil, apperror.InputParse(path, fmt.Errorf("game record missing required key \"name\""))
		}
		pop := make(map[int]float64, len(r.Popularity))
		for k, w := range r.Popularity {
			count, err := parseCount(k)
			if err != nil {
				return nil, apperror.InputParse(path, fmt.Errorf("game %q has non-integer popularity key %q: %w", r.Name, k, err))
			}
			pop[count] = w
		}
		games = append(games, model.Game{
			ID:          r.Name,
			FullName:    r.FullName,
			MinPlayers:  r.MinPlayers,
			MaxPlayers:  r.MaxPlayers,
			MinPlaytime: r.MinPlaytime,
			MaxPlaytime: r.MaxPlaytime,
			Popularity:  pop,
		})
	}
	return games, nil
}

// LoadSessions reads sessions.json, the ordered array of session
// blocks. A negative length is an InputConsistencyError.
func LoadSessions(path string) ([]model.Session, []*apperror.Error, error) {
	var records []sessionRecord
	if err := readJSON(path, &records); err != nil {
		return nil, nil, err
	}

	var warnings []*apperror.Error
	sessions := make([]model.Session, 0, len(records))
	for i, r := range records {
		if r.Length < 0 {
			warnings = append(warnings, apperror.InputConsistency(
				"negative session length",
				fmt.Sprintf("session %d (%q) has length %d", i, r.Name, r.Length)))
		}
		sessions = append(sessions, model.Session{Name: r.Name, Length: r.Length})
	}
	return sessions, warnings, nil
}

// LoadPlayers reads players.json. Out-of-range session indices are
// reported as InputConsistencyError warnings, not fatal (spec.md §7).
func LoadPlayers(path string, sessionCount int) ([]model.Player, []*apperror.Error, error) {
	var records []playerRecord
	if err := readJSON(path, &records); err != nil {
		return nil, nil, err
	}

	var warnings []*apperror.Error
	players := make([]model.Player, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			return nil, nil, apperror.InputParse(path, fmt.Errorf("player record missing required key \"name\""))
		}
		for _, s := range r.Sessions {
			if s < 0 || s >= sessionCount {
				warnings = append(warnings, apperror.InputConsistency(
					"player session index out of range",
					fmt.Sprintf("player %q references session %d, but only %d sessions exist", r.Name, s, sessionCount)))
			}
		}
		players = append(players, model.Player{
			Name:      r.Name,
			Owns:      r.Owns,
			Interests: r.Interests,
			Sessions:  r.Sessions,
		})
	}
	return players, warnings, nil
}

func parseCount(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperror.InputParse(path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperror.InputParse(path, err)
	}
	return nil
}
