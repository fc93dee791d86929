// Package cache memoizes solved schedules, adapted from the teacher's
// services/optimization-service/pkg/cache.OptimizationCacheService:
// same Redis-backed get/set-with-expiration shape, keyed here by a
// hash of the convention inputs instead of a user-supplied request ID
// (spec.md doesn't define caching, but an identical rerun of the same
// convention has no reason to re-solve).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/tablesched/internal/model"
	"github.com/stitts-dev/tablesched/internal/resilience"
	"github.com/stitts-dev/tablesched/internal/scheduler"
)

// ScheduleCache wraps a Redis client for schedule memoization.
type ScheduleCache struct {
	client  *redis.Client
	logger  *logrus.Logger
	breaker *gobreaker.CircuitBreaker
}

// New returns a ScheduleCache over an already-connected client.
func New(client *redis.Client, logger *logrus.Logger) *ScheduleCache {
	return &ScheduleCache{client: client, logger: logger, breaker: resilience.NewBreaker("redis-schedule-cache", logger)}
}

// Key derives a stable cache key from the convention inputs plus the
// solve options that affect the model (table limit, shared caps,
// popularity weight). Two calls with identical inputs produce the
// same key: json.Marshal writes map keys in sorted order, so map
// iteration order does not affect it. Slice order does: the same
// players or games listed in a different order give a different key.
func Key(games []model.Game, players []model.Player, sessions []model.Session, opts scheduler.Options) string {
	payload := struct {
		Games    []model.Game           `json:"games"`
		Players  []model.Player         `json:"players"`
		Sessions []model.Session        `json:"sessions"`
		Opts     scheduler.Options      `json:"opts"`
	}{games, players, sessions, opts}

	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns a cached schedule, or ok=false on a cache miss.
func (c *ScheduleCache) Get(ctx context.Context, key string) (*scheduler.Result, bool) {
	fullKey := fmt.Sprintf("schedule:%s", key)
	raw, breakerErr := c.breaker.Execute(func() (interface{}, error) {
		data, err := c.client.Get(ctx, fullKey).Result()
		if err == redis.Nil {
			// A miss is expected behavior, not a dependency failure:
			// return it without an error so the breaker doesn't count
			// every cold key as Redis being unhealthy.
			return "", nil
		}
		return data, err
	})
	if breakerErr != nil {
		c.logger.WithError(breakerErr).WithField("cache_key", fullKey).Warn("schedule cache read failed")
		return nil, false
	}
	data, _ := raw.(string)
	if data == "" {
		return nil, false
	}

	var result scheduler.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.WithError(err).WithField("cache_key", fullKey).Warn("schedule cache entry corrupt")
		return nil, false
	}

	c.logger.WithField("cache_key", fullKey).Debug("schedule cache hit")
	return &result, true
}

// Set stores a solved schedule for ttl.
func (c *ScheduleCache) Set(ctx context.Context, key string, result *scheduler.Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	fullKey := fmt.Sprintf("schedule:%s", key)
	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, fullKey, data, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to cache schedule: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"cache_key":  fullKey,
		"expiration": ttl,
		"sessions":   len(result.Schedule.Blocks),
	}).Debug("cached schedule")
	return nil
}
