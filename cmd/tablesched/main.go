// Command tablesched solves one convention's table assignment and
// prints the schedule, implementing the CLI surface documented (but
// scoped as an external front-end) in spec.md §6. Flags are parsed
// with the standard library rather than a third-party flag package:
// the teacher's pack carries no example of cobra/pflag actually wired
// to a command, and the CLI itself is explicitly the one component
// spec.md marks as outside the core's concern.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stitts-dev/tablesched/internal/apperror"
	"github.com/stitts-dev/tablesched/internal/cache"
	"github.com/stitts-dev/tablesched/internal/input"
	"github.com/stitts-dev/tablesched/internal/logging"
	"github.com/stitts-dev/tablesched/internal/model"
	"github.com/stitts-dev/tablesched/internal/scheduler"
	"github.com/stitts-dev/tablesched/internal/store"
	"github.com/stitts-dev/tablesched/pkg/config"
)

type sharedFlag struct {
	declarations []model.SharedGame
}

func (s *sharedFlag) String() string {
	var parts []string
	for _, d := range s.declarations {
		parts = append(parts, fmt.Sprintf("%s:%d", d.GameID, d.Cap))
	}
	return strings.Join(parts, ",")
}

func (s *sharedFlag) Set(value string) error {
	name, capStr, hasCap := strings.Cut(value, ":")
	cap := 1
	if hasCap {
		n, err := strconv.Atoi(capStr)
		if err != nil {
			return fmt.Errorf("invalid --shared cap %q: %w", capStr, err)
		}
		cap = n
	}
	s.declarations = append(s.declarations, model.SharedGame{GameID: name, Cap: cap})
	return nil
}

func main() {
	playersPath := flag.String("players", "testdata/players.json", "path to players JSON")
	sessionsPath := flag.String("sessions", "testdata/sessions.json", "path to sessions JSON")
	gamesPath := flag.String("games", "testdata/games.json", "path to games JSON")
	tableLimit := flag.Int("table-limit", 0, "maximum tables per session (0 = use TABLESCHED_DEFAULT_TABLE_LIMIT, unbounded by default)")
	useCache := flag.Bool("cache", false, "cache solved schedules in Redis, keyed by input hash")
	useHistory := flag.Bool("history", false, "record every solve attempt to the Postgres run history")
	var shared sharedFlag
	flag.Var(&shared, "shared", "declare a shared game as GAMENAME[:CAP] (repeatable)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logging.Init(cfg.ResolvedLogLevel(), cfg.ResolvedLogFormat())

	games, err := input.LoadGames(*gamesPath)
	if err != nil {
		fail(err)
	}
	sessions, sessionWarnings, err := input.LoadSessions(*sessionsPath)
	if err != nil {
		fail(err)
	}
	players, playerWarnings, err := input.LoadPlayers(*playersPath, len(sessions))
	if err != nil {
		fail(err)
	}
	for _, w := range append(sessionWarnings, playerWarnings...) {
		logging.Get().WithField("details", w.Details).Warn(w.Message)
	}

	effectiveTableLimit := *tableLimit
	if effectiveTableLimit <= 0 {
		effectiveTableLimit = cfg.DefaultTableLimit
	}
	opts := scheduler.Options{
		TableLimit:       effectiveTableLimit,
		SharedGames:      shared.declarations,
		PopularityWeight: cfg.PopularityWeight,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.SolverTimeLimitMS)*time.Millisecond)
	defer cancel()

	result, solveErr := solve(ctx, games, players, sessions, opts, cfg, *useCache, *useHistory)
	if solveErr != nil {
		fail(solveErr)
	}
	for _, w := range result.Warnings {
		logging.Get().WithField("details", w.Details).Warn(w.Message)
	}

	printSchedule(result.Schedule)
}

func solve(ctx context.Context, games []model.Game, players []model.Player, sessions []model.Session, opts scheduler.Options, cfg *config.Config, useCache, useHistory bool) (*scheduler.Result, error) {
	var sc *cache.ScheduleCache
	var key string
	if useCache {
		client := redis.NewClient(mustParseRedisURL(cfg.RedisURL))
		defer client.Close()
		sc = cache.New(client, logging.Get())
		key = cache.Key(games, players, sessions, opts)
		if cached, ok := sc.Get(ctx, key); ok {
			return cached, nil
		}
	}

	result, err := scheduler.Solve(ctx, games, players, sessions, opts)

	if useHistory {
		recordHistory(cfg, result, err, sessions, players, games)
	}
	if err != nil {
		return nil, err
	}

	if sc != nil {
		ttl := time.Duration(cfg.CacheTTLS) * time.Second
		if cacheErr := sc.Set(ctx, key, result, ttl); cacheErr != nil {
			logging.Get().WithError(cacheErr).Warn("failed to cache schedule")
		}
	}
	return result, nil
}

func recordHistory(cfg *config.Config, result *scheduler.Result, solveErr error, sessions []model.Session, players []model.Player, games []model.Game) {
	hist, err := store.Open(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logging.Get().WithError(err).Warn("failed to open run history store")
		return
	}
	defer hist.Close()

	rec := store.RunRecord{
		Feasible:  solveErr == nil,
		Sessions:  len(sessions),
		Players:   len(players),
		Games:     len(games),
		CreatedAt: time.Now().UTC(),
	}
	if solveErr != nil {
		rec.RunID = uuid.New().String()
		var appErr *apperror.Error
		if asAppError(solveErr, &appErr) {
			rec.Diagnosis = appErr.Details
		} else {
			rec.Diagnosis = solveErr.Error()
		}
	} else {
		rec.RunID = result.RunID
	}

	if err := hist.Record(rec); err != nil {
		logging.Get().WithError(err).Warn("failed to record run history")
	}
}

func asAppError(err error, target **apperror.Error) bool {
	ae, ok := err.(*apperror.Error)
	if ok {
		*target = ae
	}
	return ok
}

func mustParseRedisURL(raw string) *redis.Options {
	opt, err := redis.ParseURL(raw)
	if err != nil {
		logging.Get().WithError(err).Fatal("invalid REDIS_URL")
	}
	return opt
}

func printSchedule(sched scheduler.Schedule) {
	for i, block := range sched.Blocks {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("==== Session %s ====\n", block.Session)
		for _, table := range block.Tables {
			fmt.Printf("## %s ##\n", table.Game)
			for _, a := range table.Assignments {
				if a.Owner {
					fmt.Printf("%s*\n", a.Player)
				} else {
					fmt.Println(a.Player)
				}
			}
		}
	}
}

func fail(err error) {
	logging.Get().WithError(err).Error("run failed")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
