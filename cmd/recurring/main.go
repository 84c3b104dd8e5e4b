package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/logger"
	"go.uber.org/zap"
)

const jobLockName = "recurring-generate"

// Runs one recurring task generation sweep and exits. Per-task failures are
// reported in the summary but do not fail the run; only being unable to run
// at all exits non-zero.
func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLoggerFromConfig(cfg.Logging)
	defer log.Sync()

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()

	// The lock keeps a cron-invoked sweep from racing the API scheduler.
	// An unreachable Redis degrades to an unlocked sweep.
	redisClient, err := cache.NewRedisClient(cache.NewConfigFromEnv(cfg))
	if err != nil {
		log.Warn("Redis unavailable, sweeping without job lock", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()

		acquired, err := redisClient.AcquireJobLock(ctx, jobLockName, 10*time.Minute)
		if err != nil {
			log.Warn("Job lock check failed, sweeping without it", zap.Error(err))
		} else if !acquired {
			fmt.Println("Another sweep is already running, nothing to do.")
			return
		} else {
			defer redisClient.ReleaseJobLock(ctx, jobLockName)
		}
	}

	generator := task.NewGenerator(task.NewRepository(db), redisClient, log.Logger)
	summary, err := generator.Run(ctx, time.Now())
	if err != nil {
		log.Error("Recurring task sweep failed", zap.Error(err))
		os.Exit(1)
	}

	fmt.Printf("Recurring sweep done: %d templates processed, %d tasks generated, %d errored\n",
		summary.Processed, summary.Generated, summary.Errored)
	for _, msg := range summary.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
}
