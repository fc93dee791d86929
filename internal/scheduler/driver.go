package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/tablesched/internal/apperror"
	"github.com/stitts-dev/tablesched/internal/catalog"
	"github.com/stitts-dev/tablesched/internal/logging"
	"github.com/stitts-dev/tablesched/internal/milp"
	"github.com/stitts-dev/tablesched/internal/model"
)

// Options configures one solve beyond the convention's own data:
// table limit, shared-game caps, and the popularity tiebreak weight.
type Options struct {
	TableLimit        int
	SharedGames       []model.SharedGame
	PopularityWeight  float64 // lambda in spec.md §4.5; 0 picks a safe default
}

// Result is what a solve produces: the schedule plus the run ID its
// log lines carry, plus any non-fatal input-consistency
// warnings discovered while building the model.
type Result struct {
	RunID    string
	Schedule Schedule
	Warnings []*apperror.Error
}

// Solve builds and solves the MIP for one convention, implementing
// spec.md §4.6's Solver Driver. It is the single entry point the CLI
// calls into; the CLI consults the result cache before calling it.
func Solve(ctx context.Context, games []model.Game, players []model.Player, sessions []model.Session, opts Options) (*Result, error) {
	runID := uuid.New().String()
	log := logging.WithRunContext(runID, len(sessions), len(players), len(games))
	log.Info("starting solve")

	normalized := catalog.Normalize(games, catalog.ReferencedIDs(players))
	eff := DeriveAll(normalized, sessions)
	vs := Build(players, normalized, sessions, eff)

	warnings := UnsatisfiableInterests(vs)
	for _, w := range warnings {
		log.WithField("details", w.Details).Warn(w.Message)
	}

	tableLimit := opts.TableLimit
	if tableLimit <= 0 {
		tableLimit = len(normalized) // effectively unbounded (spec.md §6 default)
	}

	prob := milp.NewProblem()
	idx := registerVariables(prob, vs)
	addConstraints(prob, vs, idx, opts.SharedGames, tableLimit)

	lambda := opts.PopularityWeight
	if lambda <= 0 {
		lambda = safeLambda(vs)
	}
	addObjective(prob, vs, idx, lambda)

	log.WithFields(logrus.Fields{
		"variables":   prob.NumVars(),
		"constraints": len(prob.Constraints),
		"lambda":      lambda,
	}).Debug("model built")

	sol, err := prob.Solve(ctx)
	if err != nil {
		if errors.Is(err, milp.ErrInfeasible) {
			diag := diagnose(vs, eff, tableLimit)
			log.WithField("diagnosis", diag).Warn("model infeasible")
			return nil, apperror.Infeasible(diag)
		}
		log.WithError(err).Error("solver failed")
		return nil, apperror.Solver(err)
	}

	sched := extractSchedule(vs, idx, sol.Values)
	log.WithField("objective", sol.Objective).Info("solve complete")

	return &Result{RunID: runID, Schedule: sched, Warnings: warnings}, nil
}

// safeLambda picks lambda so that the popularity term can never
// outweigh a single interest satisfaction, per spec.md §4.5 and §9:
// the maximum possible popularity contribution is bounded by one unit
// weight per active (session, game) pair, so lambda*that sum < 1.
func safeLambda(vs *VariableSpace) float64 {
	maxPairs := 0
	for _, games := range vs.GamesBySession {
		maxPairs += len(games)
	}
	if maxPairs == 0 {
		return 0.01
	}
	return 0.5 / float64(maxPairs)
}

// diagnose implements spec.md §7's ModelInfeasible diagnosis: for each
// session, compare attendance to the session's maximum capacity
// (table limit times the best EMAX across present games).
func diagnose(vs *VariableSpace, eff []map[string]EffectiveParams, tableLimit int) string {
	var over []string
	for i, s := range vs.Sessions {
		attendance := len(vs.PlayersBySession[i])
		if attendance == 0 {
			continue
		}

		maxEMax := 0
		for _, g := range vs.GamesBySession[i] {
			if ep := eff[i][g]; ep.EMax > maxEMax {
				maxEMax = ep.EMax
			}
		}
		capacity := tableLimit * maxEMax

		if len(vs.GamesBySession[i]) == 0 {
			over = append(over, fmt.Sprintf("session %q: %d attendees but no game is present and fits", s.Name, attendance))
			continue
		}
		if attendance > capacity {
			over = append(over, fmt.Sprintf("session %q: %d attendees exceeds capacity %d (table-limit %d x max EMAX %d)", s.Name, attendance, capacity, tableLimit, maxEMax))
		}
	}

	if len(over) == 0 {
		return "no session is obviously over-subscribed; infeasibility likely arises from interaction between play-once and coverage constraints across sessions"
	}

	msg := "over-subscribed sessions:"
	for _, line := range over {
		msg += " " + line + ";"
	}
	return msg
}
