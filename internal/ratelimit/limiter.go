package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLimit  = 100
	DefaultWindow = time.Minute
)

// Result describes one hit against a window.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter replaces a non-positive limit or window with the default.
func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		log.Warn().Int("limit", limit).Msg("invalid rate limit, using default")
		limit = DefaultLimit
	}
	if window <= 0 {
		log.Warn().Dur("window", window).Msg("invalid rate limit window, using default")
		window = DefaultWindow
	}

	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now()
	index := now.UnixNano() / int64(l.window)
	windowEnd := time.Unix(0, (index+1)*int64(l.window))
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, index)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{Allowed: true, Limit: l.limit, Remaining: l.limit}, err
	}

	count := int(incr.Val())
	res := Result{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: l.limit - count,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = windowEnd.Sub(now)
	}
	return res, nil
}

var _ Limiter = (*RedisLimiter)(nil)
