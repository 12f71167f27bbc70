package config

import (
	"time"
)

// CacheConfig defines settings for the response cache middleware. When
// Enabled is false or no Redis client is available, caching is disabled.
// TTL defines the lifetime of cache entries; Prefix namespaces the keys.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults apply when variables are not set: a 30 second TTL keeps
// dashboard counts fresh enough while absorbing refresh storms.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenvDefault("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenvDefault("CACHE_TTL", "30s")),
		Prefix:  getenvDefault("CACHE_PREFIX", "cache"),
	}
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
