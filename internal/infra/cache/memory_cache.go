package cache

import (
	"strings"
	"time"

	"wellness/config"
	"wellness/internal/domain/service"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultTTL             = 30 * time.Second
	defaultCleanupInterval = 5 * time.Minute
)

// MemoryCache is the process-local cache backed by go-cache.
type MemoryCache struct {
	cache *gocache.Cache
}

var _ service.Cache = (*MemoryCache)(nil)

// NewMemoryCache creates a cache with the given default expiry and janitor interval.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// NewFromConfig builds the cache from the cache config section.
func NewFromConfig(cfg *config.Config) service.Cache {
	ttl, cleanup := defaultTTL, defaultCleanupInterval
	if cfg.Cache != nil {
		if cfg.Cache.EventsTTL > 0 {
			ttl = cfg.Cache.EventsTTL
		}
		if cfg.Cache.CleanupInterval > 0 {
			cleanup = cfg.Cache.CleanupInterval
		}
	}

	return NewMemoryCache(ttl, cleanup)
}

func (c *MemoryCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores value; a zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

func (c *MemoryCache) DeletePrefix(prefix string) {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}
