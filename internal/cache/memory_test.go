package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	t.Run("Set then Get", func(t *testing.T) {
		c := NewMemoryCache(time.Minute)
		c.Set("k", []byte("v"))

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("Miss on unknown key", func(t *testing.T) {
		c := NewMemoryCache(time.Minute)
		_, ok := c.Get("nope")
		assert.False(t, ok)
	})

	t.Run("Entry expires after the TTL", func(t *testing.T) {
		c := NewMemoryCache(30 * time.Millisecond)
		c.Set("k", []byte("v"))

		time.Sleep(50 * time.Millisecond)

		_, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("DeletePrefix clears only matching keys", func(t *testing.T) {
		c := NewMemoryCache(time.Minute)
		c.Set(IndexKey(1), []byte("a"))
		c.Set(IndexKey(2), []byte("b"))
		c.Set(PostKey(5, 1), []byte("c"))

		c.DeletePrefix(IndexPrefix())

		_, ok := c.Get(IndexKey(1))
		assert.False(t, ok)
		_, ok = c.Get(IndexKey(2))
		assert.False(t, ok)
		_, ok = c.Get(PostKey(5, 1))
		assert.True(t, ok)
	})

	t.Run("Post prefix does not touch other posts", func(t *testing.T) {
		c := NewMemoryCache(time.Minute)
		c.Set(PostKey(5, 1), []byte("a"))
		c.Set(PostKey(55, 1), []byte("b"))

		c.DeletePrefix(PostPrefix(5))

		_, ok := c.Get(PostKey(5, 1))
		assert.False(t, ok)
		_, ok = c.Get(PostKey(55, 1))
		assert.True(t, ok)
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "views:index:page=2", IndexKey(2))
	assert.Equal(t, "views:post:7:page=3", PostKey(7, 3))
	assert.Contains(t, IndexKey(1), IndexPrefix())
	assert.Contains(t, PostKey(7, 1), PostPrefix(7))
}
