package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter defines the interface for pacing outgoing requests
type Limiter interface {
	// Allow takes a token if one is available right now
	Allow() bool
	// Wait blocks until a token is available or ctx is done
	Wait(ctx context.Context) error
	// Reset refills the limiter to full capacity
	Reset()
}

// TokenBucket implements a token bucket that earns one token per interval
type TokenBucket struct {
	capacity float64       // Maximum number of tokens
	tokens   float64       // Current number of tokens
	interval time.Duration // Time to earn one token
	last     time.Time     // Last time tokens were added
	now      func() time.Time
	mu       sync.Mutex
}

// NewTokenBucket creates a full bucket holding up to capacity tokens
func NewTokenBucket(capacity int, interval time.Duration) *TokenBucket {
	if capacity < 1 {
		capacity = 1
	}
	return &TokenBucket{
		capacity: float64(capacity),
		tokens:   float64(capacity),
		interval: interval,
		last:     time.Now(),
		now:      time.Now,
	}
}

// PerMinute returns a limiter allowing n evenly spaced requests per minute,
// or nil when n is not positive.
func PerMinute(n int) *TokenBucket {
	if n <= 0 {
		return nil
	}
	return NewTokenBucket(1, time.Minute/time.Duration(n))
}

// Allow checks if a request can proceed
func (tb *TokenBucket) Allow() bool {
	return tb.reserve() == 0
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		delay := tb.reserve()
		if delay == 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reset resets the token bucket to full capacity
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = tb.capacity
	tb.last = tb.now()
}

// reserve takes a token and returns 0, or returns how long until one is earned
func (tb *TokenBucket) reserve() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()

	if tb.tokens >= 1 {
		tb.tokens--
		return 0
	}

	return time.Duration((1 - tb.tokens) * float64(tb.interval))
}

// refill adds tokens based on elapsed time
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.last)
	if elapsed <= 0 {
		return
	}
	tb.last = now

	if tb.interval <= 0 {
		tb.tokens = tb.capacity
		return
	}

	tb.tokens += float64(elapsed) / float64(tb.interval)
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
}
