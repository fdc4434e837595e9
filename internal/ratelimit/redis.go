package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every instance pointing at the same Redis.
type RedisLimiter struct {
	client   redis.Cmdable
	prefix   string
	requests int
	window   time.Duration
	now      func() time.Time
}

// NewRedisLimiter allows requests per window for each identifier.
func NewRedisLimiter(client redis.Cmdable, prefix string, requests int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if requests <= 0 {
		requests = 10
	}
	if window <= 0 {
		window = 10 * time.Second
	}
	return &RedisLimiter{client: client, prefix: prefix, requests: requests, window: window, now: time.Now}
}

// Limit implements Limiter. The counter for the current window is incremented and its expiry
// pinned to the window end in a single MULTI/EXEC.
func (l *RedisLimiter) Limit(ctx context.Context, identifier string) (Result, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	reset := windowStart.Add(l.window)
	key := fmt.Sprintf("%s:%s:%d", l.prefix, identifier, windowStart.UnixMilli())

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.PExpireAt(ctx, key, reset)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", identifier, err)
	}

	count := int(incr.Val())
	remaining := l.requests - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Success:   count <= l.requests,
		Limit:     l.requests,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
