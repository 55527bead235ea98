package ratelimit

import (
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // Requests per Window; zero means unlimited
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity; Limit when zero
}

// Per-hour defaults for the expensive routes. Comparisons call the LLM twice
// and the embedder twice; uploads parse PDFs.
const (
	DefaultComparePerHour = 30
	DefaultCompareBurst   = 5
	DefaultUploadPerHour  = 60
	DefaultUploadBurst    = 10
)

// LoadConfig reads the rate limiting configuration from RATE_LIMIT_*
// environment variables. Malformed values are logged and replaced by defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	compare := envInt("RATE_LIMIT_COMPARE_PER_HOUR", DefaultComparePerHour)
	upload := envInt("RATE_LIMIT_UPLOAD_PER_HOUR", DefaultUploadPerHour)

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpointConfigs(compare, upload),
	}
}

// DefaultEndpointConfigs returns the built-in per-route limits. Skill-list
// matching runs offline and uses the default limit; liveness routes are
// unlimited (see MatchEndpoint).
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(DefaultComparePerHour, DefaultUploadPerHour)
}

func endpointConfigs(comparePerHour, uploadPerHour int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/match", Method: "POST", Limit: comparePerHour, Window: time.Hour, Burst: min(comparePerHour, DefaultCompareBurst)},
		{Path: "/cvjob-compare", Method: "POST", Limit: comparePerHour, Window: time.Hour, Burst: min(comparePerHour, DefaultCompareBurst)},
		{Path: "/api/upload-pdf", Method: "POST", Limit: uploadPerHour, Window: time.Hour, Burst: min(uploadPerHour, DefaultUploadBurst)},
	}
}

func envInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Printf("[rate-limit] Ignoring %s=%q: not a non-negative integer", key, value)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("[rate-limit] Ignoring %s=%q: not a boolean", key, value)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[rate-limit] Ignoring %s=%q: not a positive duration", key, value)
		return def
	}
	return d
}

// parseIPList parses a comma-separated list of client IPs. Entries that are
// not IP addresses are logged and skipped.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if net.ParseIP(entry) == nil {
			log.Printf("[rate-limit] Ignoring invalid IP %q", entry)
			continue
		}
		result[entry] = true
	}
	return result
}
