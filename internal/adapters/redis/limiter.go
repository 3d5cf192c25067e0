// Package redis
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter enforces fixed-window attempt budgets keyed by
// operation and requesting origin.
type AttemptLimiter struct {
	redis *redis.Client
}

func NewAttemptLimiter(r *redis.Client) *AttemptLimiter {
	return &AttemptLimiter{redis: r}
}

// Allow increments the window counter and reports whether the attempt is
// still inside the budget. The window TTL is set on the first hit only,
// so the window is fixed, not sliding.
func (l *AttemptLimiter) Allow(ctx context.Context, op, origin string, limit int, window time.Duration) (bool, error) {
	key := attemptKey(op, origin)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("limiter incr failed: %w", err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("limiter expire failed: %w", err)
		}
	}

	return count <= int64(limit), nil
}

func attemptKey(op, origin string) string {
	return fmt.Sprintf("ratelimit:%s:%s", op, origin)
}
