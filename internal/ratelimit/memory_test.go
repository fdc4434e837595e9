package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrozenMemoryLimiter(t *testing.T, requests int, window time.Duration, at time.Time) *MemoryLimiter {
	t.Helper()
	l := NewMemoryLimiter(requests, window)
	l.now = func() time.Time { return at }
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestMemoryLimiterRejectsAfterBurst(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newFrozenMemoryLimiter(t, 3, 3*time.Second, now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Limit(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Success, "request %d", i)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Limit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, now.Add(time.Second), res.Reset)

	other, err := l.Limit(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Success, "identifiers are limited independently")
}

func TestMemoryLimiterRefills(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newFrozenMemoryLimiter(t, 2, 2*time.Second, now)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := l.Limit(ctx, "ip")
		require.NoError(t, err)
	}
	res, _ := l.Limit(ctx, "ip")
	require.False(t, res.Success)

	l.now = func() time.Time { return now.Add(time.Second) }
	res, err := l.Limit(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestMemoryLimiterEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newFrozenMemoryLimiter(t, 1, time.Second, now)

	_, err := l.Limit(context.Background(), "ip")
	require.NoError(t, err)

	l.evictIdle(now.Add(30 * time.Second))
	assert.Len(t, l.buckets, 1)

	l.evictIdle(now.Add(2 * time.Minute))
	assert.Empty(t, l.buckets)
}

func TestNoopAlwaysAdmits(t *testing.T) {
	res, err := Noop{}.Limit(context.Background(), "anyone")
	require.NoError(t, err)
	assert.True(t, res.Success)
}
