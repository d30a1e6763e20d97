package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/portfolio-go/internal/portfolio"
)

// PostsHandler serves the public blog and its admin upserts.
type PostsHandler struct {
	repo portfolio.PostRepository
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(repo portfolio.PostRepository) *PostsHandler {
	return &PostsHandler{repo: repo}
}

func (h *PostsHandler) ListPosts(ctx context.Context, _ *struct{}) (*ListPostsResponse, error) {
	posts, err := h.repo.ListPosts(ctx, true)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list posts")
	}

	resp := &ListPostsResponse{}
	resp.Body.Posts = make([]PostView, 0, len(posts))

	for _, p := range posts {
		view := postView(p)
		// Listings carry the excerpt only.
		view.Content = ""
		resp.Body.Posts = append(resp.Body.Posts, view)
	}

	return resp, nil
}

func (h *PostsHandler) GetPost(ctx context.Context, req *GetPostRequest) (*GetPostResponse, error) {
	post, err := h.repo.GetPost(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return nil, huma.Error404NotFound("post not found")
		}

		return nil, huma.Error500InternalServerError("failed to get post")
	}

	// Drafts are invisible on the public site.
	if !post.Published {
		return nil, huma.Error404NotFound("post not found")
	}

	return &GetPostResponse{Body: postView(post)}, nil
}

func (h *PostsHandler) SavePost(ctx context.Context, req *SavePostRequest) (*SavePostResponse, error) {
	now := time.Now()

	post := &portfolio.Post{
		Slug:      req.Body.Slug,
		Title:     req.Body.Title,
		Excerpt:   req.Body.Excerpt,
		Content:   req.Body.Content,
		Published: req.Body.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := h.repo.GetPost(ctx, req.Body.Slug); err == nil {
		post.CreatedAt = existing.CreatedAt
		post.PublishedAt = existing.PublishedAt
	}

	// First publication stamps the publication time.
	if post.Published && post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}

	if err := h.repo.SavePost(ctx, post); err != nil {
		return nil, huma.Error500InternalServerError("failed to save post")
	}

	return &SavePostResponse{Body: postView(post)}, nil
}

func postView(p *portfolio.Post) PostView {
	return PostView{
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		PublishedAt: p.PublishedAt,
	}
}
