package store

import (
	"context"
	"sort"
	"sync"

	"github.com/serroba/portfolio-go/internal/portfolio"
)

// MemoryStore is an in-memory implementation of the portfolio repositories,
// used in tests and for running the server without Postgres.
type MemoryStore struct {
	mu          sync.RWMutex
	projects    map[string]*portfolio.Project
	posts       map[string]*portfolio.Post
	subscribers map[string]*portfolio.Subscriber // keyed by ID
	messages    []*portfolio.ContactMessage
}

// NewMemoryStore creates a new in-memory portfolio store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:    make(map[string]*portfolio.Project),
		posts:       make(map[string]*portfolio.Post),
		subscribers: make(map[string]*portfolio.Subscriber),
	}
}

func (m *MemoryStore) ListProjects(_ context.Context) ([]*portfolio.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := make([]*portfolio.Project, 0, len(m.projects))
	for _, p := range m.projects {
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Featured != projects[j].Featured {
			return projects[i].Featured
		}

		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return projects, nil
}

func (m *MemoryStore) GetProject(_ context.Context, slug string) (*portfolio.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, ok := m.projects[slug]
	if !ok {
		return nil, portfolio.ErrNotFound
	}

	return project, nil
}

func (m *MemoryStore) SaveProject(_ context.Context, project *portfolio.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects[project.Slug] = project

	return nil
}

func (m *MemoryStore) ListPosts(_ context.Context, publishedOnly bool) ([]*portfolio.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := make([]*portfolio.Post, 0, len(m.posts))

	for _, p := range m.posts {
		if publishedOnly && !p.Published {
			continue
		}

		posts = append(posts, p)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})

	return posts, nil
}

func (m *MemoryStore) GetPost(_ context.Context, slug string) (*portfolio.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[slug]
	if !ok {
		return nil, portfolio.ErrNotFound
	}

	return post, nil
}

func (m *MemoryStore) SavePost(_ context.Context, post *portfolio.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts[post.Slug] = post

	return nil
}

func (m *MemoryStore) AddSubscriber(_ context.Context, sub *portfolio.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.subscribers {
		if existing.Email == sub.Email {
			return portfolio.ErrDuplicate
		}
	}

	m.subscribers[sub.ID.String()] = sub

	return nil
}

func (m *MemoryStore) GetSubscriberByToken(_ context.Context, token string) (*portfolio.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		if sub.UnsubscribeToken == token {
			return sub, nil
		}
	}

	return nil, portfolio.ErrNotFound
}

func (m *MemoryStore) ListActiveSubscribers(_ context.Context) ([]*portfolio.Subscriber, error) {
	return m.listSubscribers(true), nil
}

func (m *MemoryStore) ListSubscribers(_ context.Context) ([]*portfolio.Subscriber, error) {
	return m.listSubscribers(false), nil
}

func (m *MemoryStore) listSubscribers(activeOnly bool) []*portfolio.Subscriber {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subs := make([]*portfolio.Subscriber, 0, len(m.subscribers))

	for _, sub := range m.subscribers {
		if activeOnly && sub.Status != portfolio.SubscriberActive {
			continue
		}

		subs = append(subs, sub)
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].SubscribedAt.After(subs[j].SubscribedAt)
	})

	return subs
}

func (m *MemoryStore) UpdateSubscriberStatus(_ context.Context, id string, status portfolio.SubscriberStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subscribers[id]
	if !ok {
		return portfolio.ErrNotFound
	}

	sub.Status = status

	return nil
}

func (m *MemoryStore) SaveMessage(_ context.Context, msg *portfolio.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)

	return nil
}

func (m *MemoryStore) ListMessages(_ context.Context) ([]*portfolio.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	messages := make([]*portfolio.ContactMessage, len(m.messages))
	copy(messages, m.messages)

	return messages, nil
}
