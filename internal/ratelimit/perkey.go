package ratelimit

import (
	"sync"
	"time"
)

// PerKeyLimiterConfig configures a PerKeyLimiter instance.
type PerKeyLimiterConfig struct {
	MaxTokens     float64       // Maximum tokens per key (burst capacity)
	RefillRate    float64       // Tokens refilled per second
	CleanupPeriod time.Duration // How often to clean up inactive limiters
}

// PerKeyLimiter tracks rate limits per key (e.g., client IP).
// It creates a separate token bucket for each key and automatically
// cleans up buckets that have been idle for a full cleanup period.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	config   PerKeyLimiterConfig
	onDrop   func() // Optional callback when a request is dropped
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewPerKeyLimiter creates a new per-key rate limiter.
//
// Example:
//
//	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
//	    MaxTokens:     100,
//	    RefillRate:    100.0 / 60.0, // 100 requests per minute
//	    CleanupPeriod: 5 * time.Minute,
//	})
//	defer limiter.Stop()
//
//	if limiter.Allow(clientIP) {
//	    // Process request
//	}
func NewPerKeyLimiter(cfg PerKeyLimiterConfig) *PerKeyLimiter {
	pkl := &PerKeyLimiter{
		limiters: make(map[string]*Limiter),
		config:   cfg,
		stopCh:   make(chan struct{}),
	}

	go pkl.cleanupLoop()

	return pkl
}

// OnDrop sets a callback invoked whenever a request is dropped.
func (pkl *PerKeyLimiter) OnDrop(fn func()) {
	pkl.onDrop = fn
}

// Allow checks if a request for the given key is allowed.
// Returns true if allowed (token consumed), false if rate limit exceeded.
// An empty key is never limited.
func (pkl *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	pkl.mu.RLock()
	limiter, exists := pkl.limiters[key]
	pkl.mu.RUnlock()

	if !exists {
		pkl.mu.Lock()
		// Double-check after acquiring write lock
		limiter, exists = pkl.limiters[key]
		if !exists {
			limiter = New(pkl.config.MaxTokens, pkl.config.RefillRate)
			pkl.limiters[key] = limiter
		}
		pkl.mu.Unlock()
	}

	allowed := limiter.Allow()
	if !allowed && pkl.onDrop != nil {
		pkl.onDrop()
	}
	return allowed
}

// ActiveCount returns the number of active limiters.
func (pkl *PerKeyLimiter) ActiveCount() int {
	pkl.mu.RLock()
	defer pkl.mu.RUnlock()
	return len(pkl.limiters)
}

// Stop terminates the cleanup goroutine. Safe to call multiple times.
func (pkl *PerKeyLimiter) Stop() {
	pkl.stopOnce.Do(func() { close(pkl.stopCh) })
}

// cleanupLoop periodically removes limiters idle for a full cleanup period.
func (pkl *PerKeyLimiter) cleanupLoop() {
	if pkl.config.CleanupPeriod <= 0 {
		return
	}

	ticker := time.NewTicker(pkl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-pkl.stopCh:
			return
		case now := <-ticker.C:
			pkl.mu.Lock()
			for key, limiter := range pkl.limiters {
				if limiter.IdleSince(now) >= pkl.config.CleanupPeriod {
					delete(pkl.limiters, key)
				}
			}
			pkl.mu.Unlock()
		}
	}
}
