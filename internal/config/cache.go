package config

import "time"

// CacheConfig defines settings for the response cache middleware that
// fronts the public restaurant catalog. When Enabled is false or no
// Redis client is configured, caching is disabled. TTL bounds staleness
// of the catalog as seen by clients; the catalog is read-only to this
// service so short TTLs are purely a freshness knob.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from the environment, with
// defaults suitable for a small catalog.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
