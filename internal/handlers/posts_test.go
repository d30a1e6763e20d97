package handlers_test

import (
	"context"
	"testing"

	"github.com/serroba/portfolio-go/internal/handlers"
	"github.com/serroba/portfolio-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func savePost(t *testing.T, handler *handlers.PostsHandler, slug, title string, published bool) {
	t.Helper()

	req := &handlers.SavePostRequest{}
	req.Body.Slug = slug
	req.Body.Title = title
	req.Body.Excerpt = "excerpt"
	req.Body.Content = "full content"
	req.Body.Published = published

	_, err := handler.SavePost(context.Background(), req)
	require.NoError(t, err)
}

func TestListPosts(t *testing.T) {
	handler := handlers.NewPostsHandler(store.NewMemoryStore())

	savePost(t, handler, "hello-world", "Hello World", true)
	savePost(t, handler, "wip-draft", "Draft", false)

	resp, err := handler.ListPosts(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, resp.Body.Posts, 1, "drafts are invisible on the public site")

	assert.Equal(t, "hello-world", resp.Body.Posts[0].Slug)
	assert.Equal(t, "excerpt", resp.Body.Posts[0].Excerpt)
	assert.Empty(t, resp.Body.Posts[0].Content, "listings carry the excerpt only")
}

func TestGetPost(t *testing.T) {
	t.Run("returns a published post", func(t *testing.T) {
		handler := handlers.NewPostsHandler(store.NewMemoryStore())
		savePost(t, handler, "hello-world", "Hello World", true)

		resp, err := handler.GetPost(context.Background(), &handlers.GetPostRequest{Slug: "hello-world"})

		require.NoError(t, err)
		assert.Equal(t, "Hello World", resp.Body.Title)
		assert.Equal(t, "full content", resp.Body.Content)
		assert.False(t, resp.Body.PublishedAt.IsZero())
	})

	t.Run("returns 404 for a draft", func(t *testing.T) {
		handler := handlers.NewPostsHandler(store.NewMemoryStore())
		savePost(t, handler, "wip-draft", "Draft", false)

		_, err := handler.GetPost(context.Background(), &handlers.GetPostRequest{Slug: "wip-draft"})

		assert.Error(t, err)
	})

	t.Run("returns 404 for an unknown slug", func(t *testing.T) {
		handler := handlers.NewPostsHandler(store.NewMemoryStore())

		_, err := handler.GetPost(context.Background(), &handlers.GetPostRequest{Slug: "nope"})

		assert.Error(t, err)
	})
}

func TestSavePost(t *testing.T) {
	t.Run("first publication stamps the publication time", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		handler := handlers.NewPostsHandler(memStore)

		savePost(t, handler, "hello-world", "Hello World", false)

		draft, err := memStore.GetPost(context.Background(), "hello-world")
		require.NoError(t, err)
		assert.True(t, draft.PublishedAt.IsZero())

		savePost(t, handler, "hello-world", "Hello World", true)

		published, err := memStore.GetPost(context.Background(), "hello-world")
		require.NoError(t, err)
		assert.False(t, published.PublishedAt.IsZero())

		firstPublishedAt := published.PublishedAt

		savePost(t, handler, "hello-world", "Hello World v2", true)

		republished, err := memStore.GetPost(context.Background(), "hello-world")
		require.NoError(t, err)
		assert.Equal(t, firstPublishedAt, republished.PublishedAt, "republishing keeps the original date")
	})
}
