// Package ratelimit provides rate limiting mechanisms using the token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a token bucket rate limiter.
// Tokens refill continuously at refillRate per second up to maxTokens.
type Limiter struct {
	mu         sync.Mutex
	maxTokens  float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

// New creates a token bucket limiter with the given burst capacity and
// refill rate (tokens per second). The bucket starts full.
func New(maxTokens, refillRate float64) *Limiter {
	return &Limiter{
		maxTokens:  maxTokens,
		refillRate: refillRate,
		tokens:     maxTokens,
		lastRefill: time.Now(),
	}
}

// Allow consumes one token if available.
// Returns true if the request is allowed.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Available returns the current number of available tokens.
func (l *Limiter) Available() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()
	return l.tokens
}

// IdleSince returns how long ago the limiter was last refilled.
// Used by PerKeyLimiter cleanup.
func (l *Limiter) IdleSince(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastRefill)
}

// refill adds tokens accrued since the last refill. Caller holds the lock.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	l.tokens += elapsed * l.refillRate
	if l.tokens > l.maxTokens {
		l.tokens = l.maxTokens
	}
	l.lastRefill = now
}
