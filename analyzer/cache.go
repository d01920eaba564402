package analyzer

import (
	"sync"

	"github.com/minio/highwayhash"
	"github.com/viant/blazelint/analyzer/diagnostic"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns a highwayhash of the concatenated data
func Hash(data ...[]byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	for _, item := range data {
		if _, err = hash.Write(item); err != nil {
			return 0, err
		}
	}
	return hash.Sum64(), nil
}

type cacheEntry struct {
	key         uint64
	diagnostics []diagnostic.Diagnostic
}

// Cache keeps the last analysis result per file, keyed by content, environment and configuration
type Cache struct {
	mux     sync.RWMutex
	entries map[string]*cacheEntry
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: map[string]*cacheEntry{}}
}

// Get returns cached diagnostics if the file key did not change
func (c *Cache) Get(path string, key uint64) ([]diagnostic.Diagnostic, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	entry, ok := c.entries[path]
	if !ok || entry.key != key {
		return nil, false
	}
	return append([]diagnostic.Diagnostic{}, entry.diagnostics...), true
}

// Put stores diagnostics for the file key
func (c *Cache) Put(path string, key uint64, diagnostics []diagnostic.Diagnostic) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.entries[path] = &cacheEntry{key: key, diagnostics: append([]diagnostic.Diagnostic{}, diagnostics...)}
}

// Len returns number of cached files
func (c *Cache) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.entries)
}
