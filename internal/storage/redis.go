package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/patio-health/internal/config"
	"github.com/jwalitptl/patio-health/pkg/circuitbreaker"
)

// RedisBackend stores tokens in Redis behind a circuit breaker
type RedisBackend struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
}

func NewRedisBackend(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*RedisBackend, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.MaxRetries = cfg.MaxRetries
	opts.MinRetryBackoff = cfg.RetryBackoff
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisBackendWithClient(client, logger), nil
}

// NewRedisBackendWithClient wraps an existing client
func NewRedisBackendWithClient(client *redis.Client, logger zerolog.Logger) *RedisBackend {
	return &RedisBackend{
		client: client,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-token-storage",
			MaxFailures: 5,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound)
			},
			Logger: logger,
		}),
	}
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := r.breaker.Execute(func() error {
		v, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}
		val = v
		return nil
	})
	return val, err
}

func (r *RedisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.breaker.Execute(func() error {
		if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
			return fmt.Errorf("failed to set token: %w", err)
		}
		return nil
	})
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	return r.breaker.Execute(func() error {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		return nil
	})
}

// Ping reports whether Redis is reachable, for readiness checks
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
