package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter paces work between page pairs
type Limiter interface {
	// Wait blocks until a token is taken or ctx is done
	Wait(ctx context.Context) error
}

// TokenBucket refills to full capacity once per refill period
type TokenBucket struct {
	capacity     int
	tokens       int
	refillPeriod time.Duration
	lastRefill   time.Time
	mu           sync.Mutex
}

// NewTokenBucket creates a full token bucket
func NewTokenBucket(capacity int, refillPeriod time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:     capacity,
		tokens:       capacity,
		refillPeriod: refillPeriod,
		lastRefill:   time.Now(),
	}
}

// PerMinute returns a limiter that spaces n events evenly over a minute.
// n <= 0 disables limiting.
func PerMinute(n int) Limiter {
	if n <= 0 {
		return Unlimited{}
	}
	return NewTokenBucket(1, time.Minute/time.Duration(n))
}

// take removes a token if one is available
func (tb *TokenBucket) take() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or ctx is cancelled
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for !tb.take() {
		tb.mu.Lock()
		untilRefill := tb.refillPeriod - time.Since(tb.lastRefill)
		tb.mu.Unlock()

		if untilRefill <= 0 {
			untilRefill = 10 * time.Millisecond
		}

		timer := time.NewTimer(untilRefill)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func (tb *TokenBucket) refill() {
	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillPeriod {
		tb.tokens = tb.capacity
		tb.lastRefill = now
	}
}

// Unlimited never blocks
type Unlimited struct{}

func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
