package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/playersetup/web/handlers"
)

const (
	maxCacheSize = 64 * 1024 * 1024 // 64MB
)

// cache holds normalized setup responses keyed by request digest
type cache struct {
	Entries map[string]cacheEntry

	stats struct {
		Hits   int64
		Misses int64
		Size   int64
	}

	expiration time.Duration
	logger     logrus.FieldLogger
	sync.RWMutex
}

type cacheEntry struct {
	Data    []byte
	Expires time.Time
}

func newCache(expiration time.Duration, logger logrus.FieldLogger) *cache {
	c := &cache{expiration: expiration, logger: logger}
	c.Init()
	return c
}

// Init initializes the cache with default values
func (c *cache) Init() {
	c.Lock()
	defer c.Unlock()

	c.Entries = make(map[string]cacheEntry)
	c.stats.Size = 0
	if c.expiration <= 0 {
		c.expiration = defaultCacheExpiration
	}
}

// Get returns the cached response for key
func (c *cache) Get(key string) ([]byte, bool) {
	c.Lock()
	defer c.Unlock()

	entry, ok := c.Entries[key]
	if !ok || time.Now().After(entry.Expires) {
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return entry.Data, true
}

// Set stores a response under key
func (c *cache) Set(key string, data []byte) {
	c.Lock()
	defer c.Unlock()

	size := int64(len(data))
	if old, ok := c.Entries[key]; ok {
		c.stats.Size -= int64(len(old.Data))
	}

	if c.stats.Size+size > maxCacheSize {
		c.cleanUp()
		if c.stats.Size+size > maxCacheSize {
			c.logger.WithFields(logrus.Fields{
				"size":  c.stats.Size,
				"entry": size,
			}).Warn("Cache full, response not cached")
			delete(c.Entries, key)
			return
		}
	}

	c.Entries[key] = cacheEntry{
		Data:    data,
		Expires: time.Now().Add(c.expiration),
	}
	c.stats.Size += size
}

// CleanUp removes expired entries from the cache
func (c *cache) CleanUp() int {
	c.Lock()
	defer c.Unlock()

	return c.cleanUp()
}

func (c *cache) cleanUp() int {
	now := time.Now()
	expired := 0

	for key, entry := range c.Entries {
		if now.After(entry.Expires) {
			c.stats.Size -= int64(len(entry.Data))
			delete(c.Entries, key)
			expired++
		}
	}

	if expired > 0 {
		c.logger.WithField("expired", expired).Debug("Removed expired cache entries")
	}

	return expired
}

// Stats returns the cache counters
func (c *cache) Stats() handlers.CacheStats {
	c.RLock()
	defer c.RUnlock()

	return handlers.CacheStats{
		Hits:    c.stats.Hits,
		Misses:  c.stats.Misses,
		Size:    c.stats.Size,
		Entries: len(c.Entries),
	}
}
