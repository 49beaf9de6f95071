package transform

import (
	"sync"

	"github.com/prismui/prism/tokens"
)

// Cache memoizes bindings by (revision, kind, theme). Safe because Transform
// is pure and token sets are immutable per revision.
type Cache struct {
	mu       sync.RWMutex
	bindings map[cacheKey]*Binding
}

type cacheKey struct {
	revision string
	hash     string
	kind     Kind
	theme    tokens.Theme
}

// NewCache creates an empty binding cache
func NewCache() *Cache {
	return &Cache{bindings: make(map[cacheKey]*Binding)}
}

// Get returns the binding for (set, kind, theme), transforming on first use.
// The content hash participates in the key so a revision identifier reused
// with different content cannot serve a stale binding.
func (c *Cache) Get(set *tokens.Set, kind Kind, theme tokens.Theme) (*Binding, error) {
	key := cacheKey{revision: set.Revision(), hash: set.Hash(), kind: kind, theme: theme}

	c.mu.RLock()
	b, ok := c.bindings[key]
	c.mu.RUnlock()
	if ok {
		return b, nil
	}

	b, err := Transform(set, kind, theme)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Another goroutine may have transformed the same key; both results are
	// identical by purity, keeping whichever landed first is fine.
	if existing, ok := c.bindings[key]; ok {
		b = existing
	} else {
		c.bindings[key] = b
	}
	c.mu.Unlock()

	return b, nil
}

// Len returns the number of cached bindings
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bindings)
}
