package portfolio

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint would be violated,
	// e.g. subscribing an email address twice.
	ErrDuplicate = errors.New("already exists")
)

// ProjectRepository defines storage operations for projects.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]*Project, error)
	GetProject(ctx context.Context, slug string) (*Project, error)
	SaveProject(ctx context.Context, project *Project) error
}

// PostRepository defines storage operations for blog posts.
type PostRepository interface {
	// ListPosts returns posts, optionally restricted to published ones.
	ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error)
	GetPost(ctx context.Context, slug string) (*Post, error)
	SavePost(ctx context.Context, post *Post) error
}

// SubscriberRepository defines storage operations for newsletter subscribers.
type SubscriberRepository interface {
	AddSubscriber(ctx context.Context, sub *Subscriber) error
	GetSubscriberByToken(ctx context.Context, token string) (*Subscriber, error)
	// ListActiveSubscribers returns subscribers eligible for a newsletter send.
	ListActiveSubscribers(ctx context.Context) ([]*Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)
	UpdateSubscriberStatus(ctx context.Context, id string, status SubscriberStatus) error
}

// ContactRepository defines storage operations for contact messages.
type ContactRepository interface {
	SaveMessage(ctx context.Context, msg *ContactMessage) error
	ListMessages(ctx context.Context) ([]*ContactMessage, error)
}
