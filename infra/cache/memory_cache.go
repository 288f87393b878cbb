package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/networth/pkg/dto"
)

// MemoryCache implements cache.RateCache using in-memory storage.
type MemoryCache struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
	stop    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	quote     dto.RateQuote
	expiresAt time.Time
}

// DefaultCleanupInterval is how often expired quotes are swept by default.
const DefaultCleanupInterval = time.Minute

// NewMemoryCache creates an in-memory cache that sweeps expired entries every
// cleanupInterval until Close is called.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*cacheEntry),
		stop:    make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.cleanup(cleanupInterval)
	}
	return c
}

// Get retrieves a quote from cache.
func (c *MemoryCache) Get(_ context.Context, key string) (*dto.RateQuote, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	quote := entry.quote
	return &quote, nil
}

// Set stores a quote with a TTL.
func (c *MemoryCache) Set(_ context.Context, key string, quote *dto.RateQuote, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{quote: *quote, expiresAt: time.Now().Add(ttl)}
	return nil
}

// DeleteByPrefix removes every entry under prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
