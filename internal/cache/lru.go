// Package cache provides caching utilities for node execution.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// ResponseCache provides thread-safe LRU caching of Firecrawl responses,
// keyed by the canonical form of the request that produced them.
type ResponseCache struct {
	cache *lru.Cache[string, any]
}

// NewResponseCache creates a new LRU cache holding up to maxItems responses.
// A maxItems of zero or less returns a nil cache, which is valid to use and
// never stores anything.
func NewResponseCache(maxItems int) (*ResponseCache, error) {
	if maxItems <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, any](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{cache: c}, nil
}

// Get retrieves a response by key.
// Returns the response and true if found, nil and false otherwise.
func (c *ResponseCache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// Put adds or updates a response in the cache.
func (c *ResponseCache) Put(key string, v any) {
	if c == nil {
		return
	}
	c.cache.Add(key, v)
}

// Len returns the current number of items in the cache.
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
