package core

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dcrodman/konami/internal/konami"
)

// KeyCache remembers the offsets of recently used keys so that the shell
// doesn't have to decode the same key on every request. Only keys that
// decoded successfully are stored.
type KeyCache struct {
	cacheInstance *gocache.Cache
	enabled       bool
	ttl           time.Duration
}

// NewKeyCache returns a KeyCache configured from cfg. A disabled cache
// decodes the key on every call.
func NewKeyCache(cfg *Config) *KeyCache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &KeyCache{
		cacheInstance: gocache.New(ttl, 10*time.Minute),
		enabled:       cfg.Cache.Enabled,
		ttl:           ttl,
	}
}

// Offsets returns the decoded offsets for key. Decoding errors from the
// codec are returned unchanged. The returned slice is the caller's own copy.
func (c *KeyCache) Offsets(key string) ([]byte, error) {
	if c.enabled {
		if v, ok := c.cacheInstance.Get(key); ok {
			return append([]byte(nil), v.([]byte)...), nil
		}
	}

	offsets, err := konami.DecodeKey(key)
	if err != nil {
		return nil, err
	}

	if c.enabled {
		c.cacheInstance.Set(key, append([]byte(nil), offsets...), c.ttl)
	}
	return offsets, nil
}

// Len returns the number of keys currently remembered.
func (c *KeyCache) Len() int {
	return c.cacheInstance.ItemCount()
}
