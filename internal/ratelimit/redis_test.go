package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterPipe struct {
	redis.Pipeliner
	store *counterStore
}

func (p *counterPipe) Incr(ctx context.Context, key string) *redis.IntCmd {
	p.store.counts[key]++
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(p.store.counts[key])
	return cmd
}

func (p *counterPipe) PExpireAt(ctx context.Context, key string, tm time.Time) *redis.BoolCmd {
	p.store.expires[key] = tm
	cmd := redis.NewBoolCmd(ctx)
	cmd.SetVal(true)
	return cmd
}

type counterStore struct {
	redis.Cmdable
	counts  map[string]int64
	expires map[string]time.Time
	err     error
}

func newCounterStore() *counterStore {
	return &counterStore{counts: map[string]int64{}, expires: map[string]time.Time{}}
}

func (s *counterStore) TxPipelined(_ context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	if s.err != nil {
		return nil, s.err
	}
	return nil, fn(&counterPipe{store: s})
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	store := newCounterStore()
	limiter := NewRedisLimiter(store, "rl", 2, 10*time.Second)
	at := time.Date(2024, 1, 1, 0, 0, 3, 0, time.UTC)
	limiter.now = func() time.Time { return at }

	first, err := limiter.Limit(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, 1, first.Remaining)

	_, err = limiter.Limit(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	third, err := limiter.Limit(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, third.Success)
	assert.Equal(t, 0, third.Remaining)

	windowStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, windowStart.Add(10*time.Second), third.Reset)
	key := "rl:1.2.3.4:1704067200000"
	assert.EqualValues(t, 3, store.counts[key])
	assert.Equal(t, third.Reset, store.expires[key])

	limiter.now = func() time.Time { return at.Add(10 * time.Second) }
	next, err := limiter.Limit(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, next.Success)
}

func TestRedisLimiterPropagatesErrors(t *testing.T) {
	store := newCounterStore()
	store.err = errors.New("dial tcp: connection refused")
	limiter := NewRedisLimiter(store, "", 0, 0)

	_, err := limiter.Limit(context.Background(), "x")
	assert.Error(t, err)
}
