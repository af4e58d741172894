package layout

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is used when NewCache is given a non-positive size.
const DefaultCacheSize = 32

type cacheEntry struct {
	layout  *Layout
	modTime time.Time
	size    int64
}

// Cache keeps parsed descriptors keyed by path. An entry is reparsed once the
// file's modification time or size changes. Cached layouts are shared between
// callers and must not be mutated; clone nodes before changing attributes.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

// NewCache creates a cache holding at most size descriptors.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create layout cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Load returns the parsed descriptor at path, parsing it on a miss.
func (c *Cache) Load(path string) (*Layout, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.entries.Remove(path)
		return nil, fmt.Errorf("stat layout %s: %w", path, err)
	}

	if entry, ok := c.entries.Get(path); ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.layout, nil
	}

	l, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, cacheEntry{layout: l, modTime: info.ModTime(), size: info.Size()})
	return l, nil
}

// Len reports the number of cached descriptors.
func (c *Cache) Len() int {
	return c.entries.Len()
}
