// Package resilience wraps outbound network calls (cache, history
// store) in circuit breakers, adapted from the teacher's
// services/sports-data-service/internal/services.CircuitBreakerService:
// same gobreaker.Settings shape and state-change logging, trimmed from
// a multi-service map of named breakers to one breaker per caller,
// since the scheduler has exactly one Redis client and one Postgres
// connection to protect rather than a fan-out of external APIs.
package resilience

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// NewBreaker builds a circuit breaker that trips after at least 3
// requests with a failure ratio of 60% or higher, matching the
// teacher's ReadyToTrip threshold.
func NewBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Warn("circuit breaker state changed")
		},
	}
	return gobreaker.NewCircuitBreaker(settings)
}
