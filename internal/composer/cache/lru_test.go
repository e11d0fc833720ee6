package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birl/internal/composer/models"
)

func compositeKey(i int) models.EntryKey {
	return models.CompositeEntry(fmt.Sprintf("%x", i), models.FormatJPEG)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	c.Add(compositeKey(1), []byte("1"))
	c.Add(compositeKey(2), []byte("2"))
	_, ok := c.Get(compositeKey(1))
	require.True(t, ok)

	c.Add(compositeKey(3), []byte("3"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Cap())

	_, ok = c.Get(compositeKey(2))
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get(compositeKey(1))
	assert.True(t, ok)
	_, ok = c.Get(compositeKey(3))
	assert.True(t, ok)
}

func TestLRUNeverExceedsCapacity(t *testing.T) {
	c, err := NewLRU(10)
	require.NoError(t, err)
	for i := range 100 {
		c.Add(compositeKey(i), nil)
		assert.LessOrEqual(t, c.Len(), 10)
	}
	c.Purge()
	assert.Zero(t, c.Len())
}

func TestNewLRURejectsNonPositiveCapacity(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)
	_, err = NewLRU(-1)
	assert.Error(t, err)
}
