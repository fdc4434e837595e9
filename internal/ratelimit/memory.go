package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter keeps a token bucket per identifier in process memory. Buckets idle for longer
// than the idle timeout are dropped by a background sweep.
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	requests int
	window   time.Duration
	every    rate.Limit
	idle     time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewMemoryLimiter allows a burst of requests, refilled evenly over window.
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	if requests <= 0 {
		requests = 10
	}
	if window <= 0 {
		window = 10 * time.Second
	}
	idle := 10 * window
	if idle < time.Minute {
		idle = time.Minute
	}
	l := &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		requests: requests,
		window:   window,
		every:    rate.Every(window / time.Duration(requests)),
		idle:     idle,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.sweep(idle)
	return l
}

// Limit implements Limiter.
func (l *MemoryLimiter) Limit(_ context.Context, identifier string) (Result, error) {
	now := l.now()

	l.mu.Lock()
	b, ok := l.buckets[identifier]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.every, l.requests)}
		l.buckets[identifier] = b
	}
	b.lastAccess = now
	limiter := b.limiter
	l.mu.Unlock()

	if limiter.AllowN(now, 1) {
		remaining := int(limiter.TokensAt(now))
		if remaining < 0 {
			remaining = 0
		}
		return Result{
			Success:   true,
			Limit:     l.requests,
			Remaining: remaining,
			Reset:     now.Add(l.untilFull(remaining)),
		}, nil
	}

	reservation := limiter.ReserveN(now, 1)
	wait := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return Result{
		Success:   false,
		Limit:     l.requests,
		Remaining: 0,
		Reset:     now.Add(wait),
	}, nil
}

// Close stops the background sweep.
func (l *MemoryLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	return nil
}

func (l *MemoryLimiter) untilFull(remaining int) time.Duration {
	missing := l.requests - remaining
	return time.Duration(missing) * (l.window / time.Duration(l.requests))
}

func (l *MemoryLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle(l.now())
		case <-l.stop:
			return
		}
	}
}

func (l *MemoryLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := now.Add(-l.idle)
	for id, b := range l.buckets {
		if b.lastAccess.Before(threshold) {
			delete(l.buckets, id)
		}
	}
}
