package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLimiter(client, limit, window), mr
}

func TestAllow_BlocksAfterLimit(t *testing.T) {
	l, _ := newLimiter(t, 3, time.Minute)
	l.now = func() time.Time { return time.Unix(1_700_000_010, 0) }

	for i := 0; i < 3; i++ {
		res, err := l.Allow(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Allow(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newLimiter(t, 1, time.Minute)

	res, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllow_NewWindowResets(t *testing.T) {
	l, _ := newLimiter(t, 1, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	res, _ := l.Allow(context.Background(), "k")
	assert.True(t, res.Allowed)
	res, _ = l.Allow(context.Background(), "k")
	assert.False(t, res.Allowed)

	now = now.Add(time.Minute)
	res, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestAllow_SetsExpiry(t *testing.T) {
	l, mr := newLimiter(t, 5, time.Minute)
	l.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	_, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)

	key := "ratelimit:k:" + "28333333"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute+time.Second, mr.TTL(key))
}

func TestAllow_RedisDownFailsOpen(t *testing.T) {
	l, mr := newLimiter(t, 1, time.Minute)
	mr.Close()

	res, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, res.Allowed)
}

func TestNewRedisLimiter_NonPositiveSettingsUseDefaults(t *testing.T) {
	l, _ := newLimiter(t, 0, 0)

	assert.Equal(t, DefaultLimit, l.limit)
	assert.Equal(t, DefaultWindow, l.window)

	var res Result
	var err error
	assert.NotPanics(t, func() {
		res, err = l.Allow(context.Background(), "ip:10.0.0.1")
	})
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, DefaultLimit-1, res.Remaining)
}
