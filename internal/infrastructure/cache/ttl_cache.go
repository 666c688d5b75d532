package cache

import (
	"context"
	"sync"
	"time"
)

// TTLCache — in-memory кэш с временем жизни записей.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	now     func() time.Time
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTLCache[V any]() *TTLCache[V] {
	return &TTLCache[V]{
		entries: make(map[string]cacheEntry[V]),
		now:     time.Now,
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry[V]{value: value, expiresAt: c.now().Add(ttl)}
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// RunCleanup периодически удаляет просроченные записи до отмены ctx.
func (c *TTLCache[V]) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *TTLCache[V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
