package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/portfolio-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWindowStore(t *testing.T) {
	ctx := context.Background()

	t.Run("appends and reads entries in order", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		require.NoError(t, s.Append(ctx, "k", 100))
		require.NoError(t, s.Append(ctx, "k", 200))
		require.NoError(t, s.Append(ctx, "k", 300))

		entries, err := s.Entries(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, []int64{100, 200, 300}, entries)
	})

	t.Run("missing key reads as empty", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		entries, err := s.Entries(ctx, "missing")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("trim retains the index range", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		for _, ts := range []int64{1, 2, 3, 4, 5} {
			require.NoError(t, s.Append(ctx, "k", ts))
		}

		require.NoError(t, s.Trim(ctx, "k", 2, -1))

		entries, _ := s.Entries(ctx, "k")
		assert.Equal(t, []int64{3, 4, 5}, entries)
	})

	t.Run("trim past the end clears the key", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		require.NoError(t, s.Append(ctx, "k", 1))
		require.NoError(t, s.Trim(ctx, "k", 5, -1))

		entries, _ := s.Entries(ctx, "k")
		assert.Empty(t, entries)
	})

	t.Run("expired keys vanish on access", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		require.NoError(t, s.Append(ctx, "k", 1))
		require.NoError(t, s.Expire(ctx, "k", 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		entries, err := s.Entries(ctx, "k")

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("keys matches the pattern", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		require.NoError(t, s.Append(ctx, "rl:a", 1))
		require.NoError(t, s.Append(ctx, "rl:b", 1))
		require.NoError(t, s.Append(ctx, "other", 1))

		keys, err := s.Keys(ctx, "rl:*")

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"rl:a", "rl:b"}, keys)
	})

	t.Run("delete removes keys", func(t *testing.T) {
		s := store.NewMemoryWindowStore()

		require.NoError(t, s.Append(ctx, "a", 1))
		require.NoError(t, s.Append(ctx, "b", 1))

		require.NoError(t, s.Delete(ctx, "a", "b"))

		entries, _ := s.Entries(ctx, "a")
		assert.Empty(t, entries)
	})
}
