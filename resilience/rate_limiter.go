// Package resilience throttles the credential endpoints. Sign-in and refresh
// are the attack surface for password and token guessing, so each client gets
// its own token bucket.
package resilience

import (
	"sync"
	"time"
)

// RateLimiterConfig configures per-client throttling.
type RateLimiterConfig struct {
	// Enabled turns throttling on.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Rate is the number of requests allowed per second per client (default: 5).
	Rate float64 `yaml:"rate" mapstructure:"rate"`

	// Burst is the maximum burst size per client (default: 10).
	Burst int `yaml:"burst" mapstructure:"burst"`

	// MaxClients caps the number of tracked clients (default: 10000). When
	// exceeded, the stalest buckets are evicted.
	MaxClients int `yaml:"max_clients" mapstructure:"max_clients"`
}

// ApplyDefaults sets defaults for zero-valued fields.
func (c *RateLimiterConfig) ApplyDefaults() {
	if c.Rate <= 0 {
		c.Rate = 5.0
	}
	if c.Burst <= 0 {
		c.Burst = 10
	}
	if c.MaxClients <= 0 {
		c.MaxClients = 10000
	}
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a token-bucket limiter keyed by client. Safe for concurrent
// use.
type RateLimiter struct {
	cfg RateLimiterConfig

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRateLimiter creates a limiter from config, applying defaults.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	cfg.ApplyDefaults()
	return &RateLimiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether the client identified by key may proceed, consuming
// one token if so.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= rl.cfg.MaxClients {
			rl.evictStalest()
		}
		b = &bucket{tokens: float64(rl.cfg.Burst), lastRefill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.lastRefill = now
	b.tokens += elapsed * rl.cfg.Rate
	if b.tokens > float64(rl.cfg.Burst) {
		b.tokens = float64(rl.cfg.Burst)
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Tokens returns the current token count for key, refilled to now. Mainly for
// tests.
func (rl *RateLimiter) Tokens(key string) float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		return float64(rl.cfg.Burst)
	}
	tokens := b.tokens + time.Since(b.lastRefill).Seconds()*rl.cfg.Rate
	if tokens > float64(rl.cfg.Burst) {
		tokens = float64(rl.cfg.Burst)
	}
	return tokens
}

// evictStalest drops the bucket with the oldest refill time. Caller holds mu.
func (rl *RateLimiter) evictStalest() {
	var stalest string
	var oldest time.Time
	for k, b := range rl.buckets {
		if stalest == "" || b.lastRefill.Before(oldest) {
			stalest = k
			oldest = b.lastRefill
		}
	}
	if stalest != "" {
		delete(rl.buckets, stalest)
	}
}
