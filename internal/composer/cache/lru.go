package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"birl/internal/composer/models"
)

// DefaultCapacity is the tier 1 entry limit when none is configured.
const DefaultCapacity = 1000

// LRU is the bounded in-process tier. It evicts the least recently used
// entry on every insert past capacity; the underlying cache serializes
// access to its table.
type LRU struct {
	entries  *lru.Cache[models.EntryKey, []byte]
	capacity int
}

// NewLRU creates a tier 1 holding at most capacity entries.
func NewLRU(capacity int) (*LRU, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("tier 1 capacity must be positive, got %d", capacity)
	}
	entries, err := lru.New[models.EntryKey, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("create tier 1: %w", err)
	}
	return &LRU{entries: entries, capacity: capacity}, nil
}

func (c *LRU) Get(key models.EntryKey) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *LRU) Add(key models.EntryKey, data []byte) {
	c.entries.Add(key, data)
}

func (c *LRU) Len() int {
	return c.entries.Len()
}

func (c *LRU) Cap() int {
	return c.capacity
}

// Purge drops every entry. Tier 2 is untouched.
func (c *LRU) Purge() {
	c.entries.Purge()
}
