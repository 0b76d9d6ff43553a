package config

import (
	"strings"
	"time"
)

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig controls the Redis-backed directory lookup cache.
type CacheConfig struct {
	LookupEnabled bool          `env:"CACHE_LOOKUP_ENABLED" envDefault:"false"`
	LookupTTL     time.Duration `env:"CACHE_LOOKUP_TTL"     envDefault:"2m"`
	// LookupNamespace scopes cache keys; defaults to the OAuth tenant at wiring time.
	LookupNamespace string `env:"CACHE_LOOKUP_NAMESPACE"`
}

// Sanitize applies guardrails to cache values.
func (c *CacheConfig) Sanitize() {
	if c.LookupTTL <= 0 {
		c.LookupTTL = 2 * time.Minute
	}
	c.LookupNamespace = strings.TrimSpace(c.LookupNamespace)
}
