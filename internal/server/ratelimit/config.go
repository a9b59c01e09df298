package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // Requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

const (
	defaultAPILimit = 120
	defaultAPIBurst = 20
)

// LoadConfig loads rate limiting configuration from environment variables.
//
//	RATE_LIMIT_ENABLED           default true
//	RATE_LIMIT_DEFAULT_LIMIT     default 1000 (per window)
//	RATE_LIMIT_DEFAULT_WINDOW    default 1m
//	RATE_LIMIT_CLEANUP_INTERVAL  default 5m
//	RATE_LIMIT_API_LIMIT         default 120 per minute for POST /api/*
//	RATE_LIMIT_API_BURST         default 20
//	RATE_LIMIT_WHITELIST         comma-separated client IPs
//	RATE_LIMIT_BLACKLIST         comma-separated client IPs
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	apiLimit := envOr("RATE_LIMIT_API_LIMIT", defaultAPILimit, strconv.Atoi)
	apiBurst := envOr("RATE_LIMIT_API_BURST", defaultAPIBurst, strconv.Atoi)

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: EndpointConfigs(apiLimit, apiBurst),
	}
}

// DefaultEndpointConfigs returns the endpoint tiers with default API limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(defaultAPILimit, defaultAPIBurst)
}

// EndpointConfigs returns the endpoint tiers. Both POST API routes share the
// per-minute limit and burst; the health check is never limited.
func EndpointConfigs(apiLimit, apiBurst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/match", Method: "POST", Limit: apiLimit, Window: time.Minute, Burst: apiBurst},
		{Path: "/api/job/parse", Method: "POST", Limit: apiLimit, Window: time.Minute, Burst: apiBurst},
		{Path: "/health", Method: "GET", Limit: 0},
	}
}

// envOr parses the environment variable key, returning def when it is unset
// or does not parse.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for ip := range strings.SplitSeq(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
