// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores synthesized research results keyed by query fingerprint.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/uxinsight/pkg/types"
)

// Fingerprint returns the deterministic cache key for a topic and its
// resolved source list. Sources are sorted first, so resolution order never
// changes the key.
func Fingerprint(topic string, sources []string) string {
	sorted := make([]string, len(sources))
	copy(sorted, sources)
	sort.Strings(sorted)

	h := sha256.New()
	io.WriteString(h, topic)
	for _, s := range sorted {
		io.WriteString(h, "\n")
		io.WriteString(h, s)
	}
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	result   types.ResearchResult
	storedAt time.Time
}

// Cache is an in-memory TTL cache for research results. A read past expiry
// is a miss and evicts the entry on that read.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	// now is the clock. Tests substitute it.
	now func() time.Time
}

// New returns a Cache with the configured TTL (default 1h).
func New(cfg types.CacheConfig) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached result for key, or false on a miss. An expired
// entry is evicted and reported as a miss.
func (c *Cache) Get(key string) (*types.ResearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.storedAt.Add(c.ttl)) {
		delete(c.entries, key)
		return nil, false
	}

	result := e.result
	return &result, true
}

// Put stores the result under key, stamping the current time.
func (c *Cache) Put(key string, result *types.ResearchResult) {
	if result == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{result: *result, storedAt: c.now()}
}

// Len returns the number of stored entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops all entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
