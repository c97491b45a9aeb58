package cacheprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type cachedItem struct {
	raw       []byte
	expiresAt time.Time
}

func (i cachedItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// MemoryCache is an in-process Provider used when Redis is not configured.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]cachedItem
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]cachedItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) GetItem(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if now := c.now(); item.expired(now) {
		c.mu.Lock()
		if current, ok := c.items[key]; ok && current.expired(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(item.raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// AddItem stores value under key. A zero ttl never expires.
func (c *MemoryCache) AddItem(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	item := cachedItem{raw: raw}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item
	return nil
}

func (c *MemoryCache) RemoveItem(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}
