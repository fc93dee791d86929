// Package logging configures the scheduler's structured logger,
// adapted from the teacher's shared/pkg/logger package to a batch CLI
// rather than a long-running service: the same level/format rules,
// but context helpers keyed on a solve's run ID instead of a request
// or HTTP correlation ID.
//
// Unlike the teacher's logger, which reads LOG_LEVEL/LOG_FORMAT
// straight from the environment, Init here takes already-resolved
// values: pkg/config.Config.ResolvedLogLevel/ResolvedLogFormat own the
// env-var fallback chain once, through viper's TABLESCHED_* plumbing,
// instead of this package re-reading raw env vars in parallel to it.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var std *logrus.Logger

// Init configures the package-level logger from a resolved level name
// (a logrus level string) and format ("json" or anything else for
// text).
func Init(level, format string) *logrus.Logger {
	log := logrus.New()

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("invalid log level, using info")
	}

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)
	std = log
	return log
}

// Get returns the package logger, initializing a sensible default if
// Init was never called (e.g. in tests).
func Get() *logrus.Logger {
	if std == nil {
		return Init("info", "text")
	}
	return std
}

// WithRun returns a logger entry scoped to one solve's run ID.
func WithRun(runID string) *logrus.Entry {
	return Get().WithField("run_id", runID)
}

// WithRunContext adds convention size to the run-scoped entry so log
// lines are self-describing without re-deriving counts from state.
func WithRunContext(runID string, sessions, players, games int) *logrus.Entry {
	return Get().WithFields(logrus.Fields{
		"run_id":   runID,
		"sessions": sessions,
		"players":  players,
		"games":    games,
	})
}
