package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*AttemptLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewAttemptLimiter(client), mr
}

func TestAttemptLimiter_AllowsUpToLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := range 5 {
		allowed, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "sixth attempt should be rejected")
}

func TestAttemptLimiter_WindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	for range 6 {
		_, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
	}

	mr.FastForward(time.Minute + time.Second)

	allowed, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "budget should reset after the window")
}

func TestAttemptLimiter_KeysAreScopedByOpAndOrigin(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for range 6 {
		_, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
		require.NoError(t, err)
	}

	// Other origins and other operations keep their own budget.
	allowed, err := limiter.Allow(ctx, "verify-code", "10.0.0.2", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "resend-code", "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAttemptLimiter_RedisOutageSurfacesError(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	mr.Close()

	_, err := limiter.Allow(ctx, "verify-code", "10.0.0.1", 5, time.Minute)
	assert.Error(t, err)
}
