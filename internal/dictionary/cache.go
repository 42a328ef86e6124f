package dictionary

import (
	"strings"
	"sync"
)

// Cache maps lowercase words to their validity for one level session.
// It never evicts; a new Cache is created whenever a level starts.
type Cache struct {
	mu      sync.Mutex
	entries map[string]bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]bool)}
}

// Get returns the cached validity of word.
func (c *Cache) Get(word string) (valid, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	valid, ok = c.entries[strings.ToLower(word)]
	return valid, ok
}

// Put records the validity of word.
func (c *Cache) Put(word string, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(word)] = valid
}

// Len returns the number of cached words.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
