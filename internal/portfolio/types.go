package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio project shown on the public site.
type Project struct {
	Slug        string
	Title       string
	Summary     string
	Description string
	RepoURL     string
	LiveURL     string
	Tags        []string
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Post is a blog post. Only published posts are visible publicly.
type Post struct {
	Slug        string
	Title       string
	Excerpt     string
	Content     string
	Published   bool
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubscriberStatus tracks the lifecycle of a newsletter subscriber.
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber is a newsletter subscriber. UnsubscribeToken is an opaque
// nanoid embedded in unsubscribe links.
type Subscriber struct {
	ID               uuid.UUID
	Email            string
	Status           SubscriberStatus
	UnsubscribeToken string
	SubscribedAt     time.Time
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Subject    string
	Body       string
	ReceivedAt time.Time
}
