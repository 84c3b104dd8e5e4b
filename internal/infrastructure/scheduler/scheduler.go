package scheduler

import (
	"context"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/logger"
	"go.uber.org/zap"
)

const (
	recurringJobName = "recurring-generate"
	recurringJobTTL  = 10 * time.Minute
)

// Scheduler drives the daily recurring task sweep. A redis job lock keeps
// multiple API instances from sweeping at the same time.
type Scheduler struct {
	generator *task.Generator
	redis     *cache.RedisClient
	logger    *logger.Logger
	stop      chan struct{}
}

func NewScheduler(generator *task.Generator, redis *cache.RedisClient, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		generator: generator,
		redis:     redis,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup so a restarted instance catches up
	s.runSweep()

	// Calculate time until next midnight
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Recurring task scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		timer := time.NewTimer(timeUntilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stop:
			return
		}
		s.runSweep()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runSweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts future sweeps. A sweep already in flight finishes.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()

	if s.redis != nil {
		acquired, err := s.redis.AcquireJobLock(ctx, recurringJobName, recurringJobTTL)
		if err != nil {
			s.logger.Error("Failed to acquire recurring sweep lock", zap.Error(err))
			return
		}
		if !acquired {
			s.logger.Info("Recurring sweep already running elsewhere, skipping")
			return
		}
		defer func() {
			if err := s.redis.ReleaseJobLock(ctx, recurringJobName); err != nil {
				s.logger.Warn("Failed to release recurring sweep lock", zap.Error(err))
			}
		}()
	}

	start := time.Now()
	summary, err := s.generator.Run(ctx, start)
	if err != nil {
		s.logger.Error("Recurring task sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("Recurring task sweep completed",
		zap.Int("processed", summary.Processed),
		zap.Int("generated", summary.Generated),
		zap.Int("errored", summary.Errored),
		zap.Duration("duration", time.Since(start)),
	)
}
