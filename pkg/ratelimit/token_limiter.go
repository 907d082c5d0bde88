package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-window token budget, e.g. the tokens-per-minute quota of an LLM API.
// A request larger than the whole budget is admitted alone once the window is empty.
type TokenLimiter struct {
	mu          sync.Mutex
	capacity    int
	used        int
	window      time.Duration
	windowStart time.Time
	now         func() time.Time
}

// NewTokenLimiter creates a limiter allowing tokensPerMinute tokens per minute.
// A non-positive budget disables limiting.
func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	return newTokenLimiter(tokensPerMinute, time.Minute, time.Now)
}

func newTokenLimiter(capacity int, window time.Duration, now func() time.Time) *TokenLimiter {
	return &TokenLimiter{
		capacity:    capacity,
		window:      window,
		windowStart: now(),
		now:         now,
	}
}

// Wait blocks until tokens fit in the current window or ctx is done.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if l.capacity <= 0 {
		return nil
	}
	for {
		l.mu.Lock()
		now := l.now()
		if now.Sub(l.windowStart) >= l.window {
			l.windowStart = now
			l.used = 0
		}
		if l.used+tokens <= l.capacity || (l.used == 0 && tokens > l.capacity) {
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := l.window - now.Sub(l.windowStart)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// GetRemaining returns the tokens still available in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.capacity <= 0 {
		return 0
	}
	if l.now().Sub(l.windowStart) >= l.window {
		return l.capacity
	}
	return l.capacity - l.used
}
