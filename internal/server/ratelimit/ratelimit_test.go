package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)

	for i := 0; i < 10; i++ {
		if !b.take(now) {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	if b.take(now) {
		t.Error("Expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 10; i++ {
		b.take(now)
	}

	later := now.Add(1100 * time.Millisecond)
	if !b.take(later) {
		t.Error("Expected request to be allowed after refill")
	}
	if b.take(later) {
		t.Error("Expected request to be denied after consuming refilled token")
	}

	// Refill never exceeds capacity
	remaining, _ := b.status(later.Add(time.Hour))
	if remaining != 10 {
		t.Errorf("Expected bucket capped at 10, got %d", remaining)
	}
}

func TestBucket_Status(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 5; i++ {
		b.take(now)
	}

	remaining, resetTime := b.status(now)
	if remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", remaining)
	}
	if want := now.Add(5 * time.Second); !resetTime.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, resetTime)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/resume", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/resume", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter != 6*time.Second {
		t.Errorf("Expected retry after 6s, got %v", info.RetryAfter)
	}
}

func TestLimiter_SeparateBucketsPerMethod(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	if ok, _ := limiter.Allow("10.0.0.1", "/api/resume", "GET"); !ok {
		t.Fatal("Expected first GET to be allowed")
	}
	if ok, _ := limiter.Allow("10.0.0.1", "/api/resume", "OPTIONS"); !ok {
		t.Error("Expected OPTIONS to use its own bucket")
	}
	if ok, _ := limiter.Allow("10.0.0.2", "/api/resume", "GET"); !ok {
		t.Error("Expected another client to use its own bucket")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/match", "POST")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", info.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/match", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_EndpointTiers(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	clientID := "127.0.0.1"

	for i := 0; i < defaultAPIBurst; i++ {
		allowed, info := limiter.Allow(clientID, "/api/match", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != defaultAPILimit {
			t.Errorf("Expected limit %d, got %d", defaultAPILimit, info.Limit)
		}
	}

	if allowed, _ := limiter.Allow(clientID, "/api/match", "POST"); allowed {
		t.Error("Expected request after burst to be denied")
	}

	// The parse tier has its own bucket
	if allowed, _ := limiter.Allow(clientID, "/api/job/parse", "POST"); !allowed {
		t.Error("Expected /api/job/parse to be allowed")
	}

	allowed, info := limiter.Allow(clientID, "/api/resume", "GET")
	if !allowed {
		t.Error("Expected default-tier endpoint to be allowed")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		allowedCount int
	)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/match", "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	start := time.Now()
	limiter.now = func() time.Time { return start }
	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/", "GET")
	}

	// Half the clients come back later
	later := start.Add(90 * time.Minute)
	limiter.now = func() time.Time { return later }
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/", "GET")
	}

	limiter.cleanupBuckets(later)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 5 {
		t.Errorf("Expected 5 buckets after cleanup, got %d", len(limiter.buckets))
	}
	if _, ok := limiter.buckets["127.0.0.1:/:GET"]; !ok {
		t.Error("Expected recently used bucket to survive cleanup")
	}
}

func TestLimiter_StopIdempotent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/match", Method: "POST", Limit: 1},
		{Path: "/api/", Method: "POST", Limit: 2},
		{Path: "/api/job/parse", Method: "POST", Limit: 3},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{"/api/match", "POST", 1, false},
		{"/api/job/parse", "POST", 3, false},
		{"/api/other", "POST", 2, false},
		{"/api/match", "GET", 0, true},
		{"/", "POST", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil || got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %+v", tt.wantLimit, got)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_API_LIMIT", "30")
	t.Setenv("RATE_LIMIT_API_BURST", "not-a-number")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1 , ,10.0.0.2")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("Expected rate limiting enabled")
	}
	if !cfg.Whitelist["10.0.0.1"] || !cfg.Whitelist["10.0.0.2"] || len(cfg.Whitelist) != 2 {
		t.Errorf("Unexpected whitelist %v", cfg.Whitelist)
	}
	match := MatchEndpoint("/api/match", "POST", cfg.EndpointConfigs)
	if match == nil || match.Limit != 30 || match.Burst != defaultAPIBurst {
		t.Errorf("Unexpected /api/match tier %+v", match)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting disabled")
	}
}
