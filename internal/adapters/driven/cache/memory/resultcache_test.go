package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
)

func key(text string) domain.CacheKey {
	return domain.CacheKey{Text: text, Bucket: "none"}
}

func set(text string) domain.RankedResultSet {
	return domain.RankedResultSet{
		Results: []domain.SearchResult{
			{ID: text, DisplayText: text, Kind: domain.KindPlace, Confidence: 1},
		},
	}
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c := NewResultCache(0)

	_, ok := c.Get(key("praha"))
	assert.False(t, ok)
}

func TestPutThenGet(t *testing.T) {
	c := NewResultCache(0)
	c.Put(key("praha"), set("praha"), time.Minute)

	got, ok := c.Get(key("praha"))
	require.True(t, ok)
	assert.Equal(t, set("praha"), got)
}

func TestExpiredEntryIsMissAndEvicted(t *testing.T) {
	c := NewResultCache(0)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put(key("praha"), set("praha"), time.Minute)

	current = current.Add(59 * time.Second)
	_, ok := c.Get(key("praha"))
	assert.True(t, ok)

	current = current.Add(2 * time.Second)
	_, ok = c.Get(key("praha"))
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestPutOverwritesExisting(t *testing.T) {
	c := NewResultCache(0)
	c.Put(key("praha"), set("old"), time.Minute)
	c.Put(key("praha"), set("new"), time.Minute)

	got, ok := c.Get(key("praha"))
	require.True(t, ok)
	assert.Equal(t, "new", got.Results[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestLRUEvictionAtCapacity(t *testing.T) {
	c := NewResultCache(2)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put(key("a"), set("a"), time.Minute)
	current = current.Add(time.Second)
	c.Put(key("b"), set("b"), time.Minute)

	// Touch "a" so "b" is the eviction candidate.
	current = current.Add(time.Second)
	_, ok := c.Get(key("a"))
	require.True(t, ok)

	current = current.Add(time.Second)
	c.Put(key("c"), set("c"), time.Minute)

	_, ok = c.Get(key("a"))
	assert.True(t, ok)
	_, ok = c.Get(key("b"))
	assert.False(t, ok)
	_, ok = c.Get(key("c"))
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewResultCache(64)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				k := key(fmt.Sprintf("q%d", (n+j)%32))
				c.Put(k, set(k.Text), time.Minute)
				c.Get(k)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}
