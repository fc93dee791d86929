// Package store persists a record of every solve attempt, adapted
// from the teacher's shared/pkg/database connection and pooling
// pattern. It supplements spec.md §7's infeasibility diagnosis by
// keeping it around instead of only printing it once.
package store

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stitts-dev/tablesched/internal/resilience"
)

// RunRecord is one row in the solve history table.
type RunRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"uniqueIndex;size:64"`
	Feasible   bool
	Diagnosis  string
	Sessions   int
	Players    int
	Games      int
	Objective  float64
	CreatedAt  time.Time
}

// History wraps a gorm connection scoped to run records.
type History struct {
	db      *gorm.DB
	breaker *gobreaker.CircuitBreaker
}

// Open connects to Postgres and migrates the run_records table,
// mirroring shared/pkg/database.NewConnectionWithConfig's pool
// settings for a single low-traffic batch tool.
func Open(databaseURL string, isDevelopment bool) (*History, error) {
	logLevel := gormlogger.Error
	if isDevelopment {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}

	logrus.WithField("database_url_set", databaseURL != "").Info("run history store connected")
	return &History{db: db, breaker: resilience.NewBreaker("postgres-run-history", logrus.StandardLogger())}, nil
}

// Record appends one solve attempt's outcome.
func (h *History) Record(r RunRecord) error {
	_, err := h.breaker.Execute(func() (interface{}, error) {
		return nil, h.db.Create(&r).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record solve history: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (h *History) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
