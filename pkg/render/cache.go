package render

import (
	"encoding/json"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/slot-compose/pkg/state"
)

// Cache memoizes composed frames keyed by everything that influences the
// output: source identity, rotation, crop, filter parameters, mirror, and
// output size. Keys are derived from the assignment's value, so any state
// change produces a new key; callers evict superseded keys to keep the cache
// bounded.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	frames map[string]image.Image
}

// NewCache creates an empty frame cache.
func NewCache() *Cache {
	return &Cache{frames: make(map[string]image.Image)}
}

// Key derives the cache key for an assignment and output size.
func Key(a state.Assignment, outW, outH int) string {
	rec, err := json.Marshal(state.ToRecord(a))
	if err != nil {
		// A flat record of numbers, booleans and strings always marshals;
		// fall back to an uncacheable key if that ever changes.
		return fmt.Sprintf("unkeyable-%p", &a)
	}
	return fmt.Sprintf("%s|%dx%d", rec, outW, outH)
}

// Get returns the cached frame for key, if present.
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.frames[key]
	return img, ok
}

// Put stores a composed frame under key.
func (c *Cache) Put(key string, img image.Image) {
	c.mu.Lock()
	c.frames[key] = img
	c.mu.Unlock()
}

// Evict removes one entry.
func (c *Cache) Evict(key string) {
	c.mu.Lock()
	delete(c.frames, key)
	c.mu.Unlock()
}

// Clear drops every cached frame.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len returns the number of cached frames.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}
