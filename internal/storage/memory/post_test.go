package memory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostStore(t *testing.T) (*PostMemoryStorage, uint) {
	users := NewUserMemoryStorage()
	author, err := users.Create("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	return NewPostMemoryStorage(users), author.ID
}

func TestPostMemoryStorage_Create(t *testing.T) {
	store, authorID := newPostStore(t)

	t.Run("Create and fetch round-trip", func(t *testing.T) {
		created, err := store.Create(authorID, "Hello", "World")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		fetched, err := store.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", fetched.Title)
		assert.Equal(t, "World", fetched.Content)
		assert.Equal(t, authorID, fetched.UserID)
		assert.Equal(t, "alice", fetched.Author.Username)
	})

	t.Run("Unknown post yields ErrNotFound", func(t *testing.T) {
		_, err := store.GetByID(999)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestPostMemoryStorage_ListPage(t *testing.T) {
	t.Run("Newest post comes first", func(t *testing.T) {
		store, authorID := newPostStore(t)
		for i := 1; i <= 3; i++ {
			_, err := store.Create(authorID, fmt.Sprintf("Post %d", i), "content")
			require.NoError(t, err)
		}

		posts, total, err := store.ListPage(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, posts, 3)
		assert.Equal(t, "Post 3", posts[0].Title)
		assert.Equal(t, "Post 1", posts[2].Title)
	})

	t.Run("Pages split at the page size", func(t *testing.T) {
		store, authorID := newPostStore(t)
		for i := 1; i <= 12; i++ {
			_, err := store.Create(authorID, fmt.Sprintf("Post %d", i), "content")
			require.NoError(t, err)
		}

		page1, total, err := store.ListPage(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, page1, 10)

		page2, _, err := store.ListPage(2, 10)
		require.NoError(t, err)
		require.Len(t, page2, 2)
		assert.Equal(t, "Post 2", page2[0].Title)
	})

	t.Run("Page past the end is empty, not an error", func(t *testing.T) {
		store, authorID := newPostStore(t)
		_, err := store.Create(authorID, "Only one", "content")
		require.NoError(t, err)

		posts, total, err := store.ListPage(5, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Empty(t, posts)
	})
}

func TestPostMemoryStorage_IncrementViews(t *testing.T) {
	t.Run("Each call adds exactly one", func(t *testing.T) {
		store, authorID := newPostStore(t)
		created, err := store.Create(authorID, "Hello", "World")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, store.IncrementViews(created.ID))
		}

		fetched, err := store.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, fetched.Views)
	})

	t.Run("N concurrent views add exactly N", func(t *testing.T) {
		store, authorID := newPostStore(t)
		created, err := store.Create(authorID, "Hello", "World")
		require.NoError(t, err)

		const n = 100
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_ = store.IncrementViews(created.ID)
			}()
		}
		wg.Wait()

		fetched, err := store.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, n, fetched.Views)
	})

	t.Run("Unknown post yields ErrNotFound", func(t *testing.T) {
		store, _ := newPostStore(t)
		err := store.IncrementViews(999)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}
