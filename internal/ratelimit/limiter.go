// Package ratelimit decides whether a caller may issue another request in the current window.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one admission check.
type Result struct {
	Success   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter admits or rejects one request for identifier. Each call counts as a request.
type Limiter interface {
	Limit(ctx context.Context, identifier string) (Result, error)
}

// Noop admits every request.
type Noop struct{}

// Limit implements Limiter.
func (Noop) Limit(context.Context, string) (Result, error) {
	return Result{Success: true}, nil
}
