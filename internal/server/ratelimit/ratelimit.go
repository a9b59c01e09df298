// Package ratelimit provides per-client rate limiting using token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// idleTTL is how long an unused bucket is kept before cleanup removes it
const idleTTL = time.Hour

// bucket is a token bucket. Tokens refill continuously at refillRate per
// second up to capacity. Buckets are guarded by the owning Limiter's mutex.
type bucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

func (b *bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
		b.lastRefill = now
	}
}

// take consumes a token if one is available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1.0 {
		b.tokens--
		return true
	}
	return false
}

// status returns whole tokens left and when the bucket will be full again.
func (b *bucket) status(now time.Time) (int, time.Time) {
	b.refill(now)
	remaining := int(b.tokens)
	if b.tokens >= b.capacity || b.refillRate <= 0 {
		return remaining, now
	}
	secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
	return remaining, now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one token bucket per client, endpoint and method.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewLimiter creates a new rate limiter. A nil config enables limiting with
// 1000 requests per minute for every endpoint.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}

	return l
}

// Allow reports whether a request from clientID to the endpoint is allowed,
// consuming a token when it is.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	limit, window, burst := l.limitsFor(endpoint, method)
	if limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	key := clientID + ":" + endpoint + ":" + method

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		capacity := burst
		if capacity <= 0 {
			capacity = limit
		}
		b = newBucket(capacity, float64(limit)/window.Seconds(), now)
		l.buckets[key] = b
	}
	allowed := b.take(now)
	remaining, resetTime := b.status(now)
	l.mu.Unlock()

	info := Info{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		// One token is enough to retry
		info.RetryAfter = max(0, time.Duration(float64(time.Second)/b.refillRate))
	}
	return allowed, info
}

// limitsFor resolves the limit, window and burst for an endpoint, falling
// back to the configured default.
func (l *Limiter) limitsFor(endpoint, method string) (int, time.Duration, int) {
	if cfg := MatchEndpoint(endpoint, method, l.config.EndpointConfigs); cfg != nil {
		return cfg.Limit, cfg.Window, cfg.Burst
	}
	return l.config.DefaultLimit, l.config.DefaultWindow, l.config.DefaultLimit
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets(l.now())
		case <-l.stop:
			return
		}
	}
}

// cleanupBuckets removes buckets idle for longer than idleTTL.
func (l *Limiter) cleanupBuckets(now time.Time) {
	cutoff := now.Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
