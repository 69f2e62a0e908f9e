// Package ratelimit throttles repeated failed logins using fixed windows in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "tinyshop:login:"

// Limiter counts failures per key within a fixed window.
type Limiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
	logger      zerolog.Logger
}

// NewLimiter creates a Limiter allowing maxAttempts failures per window.
func NewLimiter(client redis.Cmdable, maxAttempts int, window time.Duration, logger zerolog.Logger) *Limiter {
	return &Limiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger.With().Str("component", "ratelimit").Logger(),
	}
}

// NewClient opens a Redis client and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Allow reports whether key is still under its failure limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return n < l.maxAttempts, nil
}

// RecordFailure increments the failure counter for key. The window starts at
// the first failure.
func (l *Limiter) RecordFailure(ctx context.Context, key string) error {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempt counter: %w", err)
	}

	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set attempt window: %w", err)
		}
	}

	if n >= int64(l.maxAttempts) {
		l.logger.Warn().Int64("attempts", n).Msg("login attempts limit reached")
	}

	return nil
}

// Reset clears the failure counter for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempt counter: %w", err)
	}
	return nil
}

func (l *Limiter) key(key string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(key))
}
