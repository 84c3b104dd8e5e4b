package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/events"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

var (
	ErrCacheConnection = errors.New("cache: connection error")
	ErrInvalidConfig   = errors.New("cache: invalid configuration")
)

// WorkspaceEventChannel is the Redis channel prefix for workspace events
const WorkspaceEventChannel = "workspace:events"

// Config holds the configuration for Redis client
type Config struct {
	Addr             string
	Password         string
	DB               int
	PoolSize         int
	MinIdleConns     int
	MaxRetries       int
	ConnTimeout      time.Duration
	OperationTimeout time.Duration
	KeyPrefix        string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize:         100,
		MinIdleConns:     10,
		MaxRetries:       3,
		ConnTimeout:      5 * time.Second,
		OperationTimeout: 2 * time.Second,
		KeyPrefix:        "ems:",
	}
}

// NewConfigFromEnv creates a Redis config from project configuration
func NewConfigFromEnv(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c.Password = cfg.Redis.Password
	c.DB = cfg.Redis.DB
	if cfg.Server.Timeout > 0 {
		c.OperationTimeout = cfg.Server.Timeout
	}
	return c
}

// RedisClient wraps the Redis client with event publishing and job locking
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewRedisClient creates a new Redis client with the provided configuration
func NewRedisClient(cfg *Config) (*RedisClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		config: cfg,
	}, nil
}

// GetClient exposes the underlying redis client
func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// HealthCheck verifies the Redis connection is alive
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.OperationTimeout)
	defer cancel()

	if _, err := r.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// PublishWorkspaceEvent publishes a workspace event to the event channel
func (r *RedisClient) PublishWorkspaceEvent(ctx context.Context, event *events.WorkspaceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace event: %w", err)
	}

	channel := fmt.Sprintf("%s%s:%s", r.config.KeyPrefix, WorkspaceEventChannel, event.WorkspaceID)
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish workspace event: %w", err)
	}

	return nil
}

// AcquireJobLock takes a best-effort exclusive lock for a named background
// job. Returns false when another process already holds the lock.
func (r *RedisClient) AcquireJobLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	key := r.config.KeyPrefix + "job_lock:" + name

	ok, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire job lock %q: %w", name, err)
	}
	if !ok {
		log.Info("Job lock already held", zap.String("job", name))
	}
	return ok, nil
}

// ReleaseJobLock releases a lock taken with AcquireJobLock
func (r *RedisClient) ReleaseJobLock(ctx context.Context, name string) error {
	key := r.config.KeyPrefix + "job_lock:" + name
	return r.client.Del(ctx, key).Err()
}
