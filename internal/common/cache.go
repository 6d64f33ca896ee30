package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is an in-memory set of keys that expire on their own.
type Cache struct {
	items *cache.Cache
}

func NewCache(defaultExpiration, cleanupInterval time.Duration) *Cache {
	return &Cache{items: cache.New(defaultExpiration, cleanupInterval)}
}

// Put stores key for ttl. A non-positive ttl falls back to the cache default.
func (c *Cache) Put(key string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	c.items.Set(key, struct{}{}, ttl)
}

// Has reports whether key is present and not expired.
func (c *Cache) Has(key string) bool {
	_, ok := c.items.Get(key)
	return ok
}

func CacheKeyRevokedToken(jti string) string {
	return "revoked_token:" + jti
}
