package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/portfolio-go/internal/portfolio"
)

const uniqueViolationCode = "23505"

// PostgresStore is a PostgreSQL implementation of the portfolio repositories.
// The schema is managed externally; queries are written against it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed portfolio store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) ListProjects(ctx context.Context) ([]*portfolio.Project, error) {
	query := `
		SELECT slug, title, summary, description, repo_url, live_url, tags, featured, created_at, updated_at
		FROM projects
		ORDER BY featured DESC, created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*portfolio.Project

	for rows.Next() {
		var project portfolio.Project

		err := rows.Scan(
			&project.Slug,
			&project.Title,
			&project.Summary,
			&project.Description,
			&project.RepoURL,
			&project.LiveURL,
			&project.Tags,
			&project.Featured,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

func (p *PostgresStore) GetProject(ctx context.Context, slug string) (*portfolio.Project, error) {
	query := `
		SELECT slug, title, summary, description, repo_url, live_url, tags, featured, created_at, updated_at
		FROM projects
		WHERE slug = $1
	`

	var project portfolio.Project

	err := p.pool.QueryRow(ctx, query, slug).Scan(
		&project.Slug,
		&project.Title,
		&project.Summary,
		&project.Description,
		&project.RepoURL,
		&project.LiveURL,
		&project.Tags,
		&project.Featured,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrNotFound
		}

		return nil, err
	}

	return &project, nil
}

func (p *PostgresStore) SaveProject(ctx context.Context, project *portfolio.Project) error {
	query := `
		INSERT INTO projects (slug, title, summary, description, repo_url, live_url, tags, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			description = EXCLUDED.description,
			repo_url = EXCLUDED.repo_url,
			live_url = EXCLUDED.live_url,
			tags = EXCLUDED.tags,
			featured = EXCLUDED.featured,
			updated_at = EXCLUDED.updated_at
	`

	_, err := p.pool.Exec(ctx, query,
		project.Slug,
		project.Title,
		project.Summary,
		project.Description,
		project.RepoURL,
		project.LiveURL,
		project.Tags,
		project.Featured,
		project.CreatedAt,
		project.UpdatedAt,
	)

	return err
}

func (p *PostgresStore) ListPosts(ctx context.Context, publishedOnly bool) ([]*portfolio.Post, error) {
	query := `
		SELECT slug, title, excerpt, content, published, published_at, created_at, updated_at
		FROM posts
		WHERE NOT $1 OR published
		ORDER BY published_at DESC NULLS LAST, created_at DESC
	`

	rows, err := p.pool.Query(ctx, query, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*portfolio.Post

	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (p *PostgresStore) GetPost(ctx context.Context, slug string) (*portfolio.Post, error) {
	query := `
		SELECT slug, title, excerpt, content, published, published_at, created_at, updated_at
		FROM posts
		WHERE slug = $1
	`

	post, err := scanPost(p.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrNotFound
		}

		return nil, err
	}

	return post, nil
}

func (p *PostgresStore) SavePost(ctx context.Context, post *portfolio.Post) error {
	query := `
		INSERT INTO posts (slug, title, excerpt, content, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			published = EXCLUDED.published,
			published_at = EXCLUDED.published_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := p.pool.Exec(ctx, query,
		post.Slug,
		post.Title,
		post.Excerpt,
		post.Content,
		post.Published,
		nullableTime(post.PublishedAt),
		post.CreatedAt,
		post.UpdatedAt,
	)

	return err
}

func (p *PostgresStore) AddSubscriber(ctx context.Context, sub *portfolio.Subscriber) error {
	query := `
		INSERT INTO subscribers (id, email, status, unsubscribe_token, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		sub.ID,
		sub.Email,
		string(sub.Status),
		sub.UnsubscribeToken,
		sub.SubscribedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return portfolio.ErrDuplicate
		}

		return err
	}

	return nil
}

func (p *PostgresStore) GetSubscriberByToken(ctx context.Context, token string) (*portfolio.Subscriber, error) {
	query := `
		SELECT id, email, status, unsubscribe_token, subscribed_at
		FROM subscribers
		WHERE unsubscribe_token = $1
	`

	sub, err := scanSubscriber(p.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, portfolio.ErrNotFound
		}

		return nil, err
	}

	return sub, nil
}

func (p *PostgresStore) ListActiveSubscribers(ctx context.Context) ([]*portfolio.Subscriber, error) {
	return p.listSubscribers(ctx, true)
}

func (p *PostgresStore) ListSubscribers(ctx context.Context) ([]*portfolio.Subscriber, error) {
	return p.listSubscribers(ctx, false)
}

func (p *PostgresStore) listSubscribers(ctx context.Context, activeOnly bool) ([]*portfolio.Subscriber, error) {
	query := `
		SELECT id, email, status, unsubscribe_token, subscribed_at
		FROM subscribers
		WHERE NOT $1 OR status = 'active'
		ORDER BY subscribed_at DESC
	`

	rows, err := p.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*portfolio.Subscriber

	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}

		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (p *PostgresStore) UpdateSubscriberStatus(ctx context.Context, id string, status portfolio.SubscriberStatus) error {
	query := `UPDATE subscribers SET status = $2 WHERE id = $1`

	tag, err := p.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return portfolio.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) SaveMessage(ctx context.Context, msg *portfolio.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, body, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Body,
		msg.ReceivedAt,
	)

	return err
}

func (p *PostgresStore) ListMessages(ctx context.Context) ([]*portfolio.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, body, received_at
		FROM contact_messages
		ORDER BY received_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*portfolio.ContactMessage

	for rows.Next() {
		var msg portfolio.ContactMessage

		err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.ReceivedAt)
		if err != nil {
			return nil, err
		}

		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

func scanPost(row pgx.Row) (*portfolio.Post, error) {
	var post portfolio.Post

	var publishedAt *time.Time

	err := row.Scan(
		&post.Slug,
		&post.Title,
		&post.Excerpt,
		&post.Content,
		&post.Published,
		&publishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt != nil {
		post.PublishedAt = *publishedAt
	}

	return &post, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func scanSubscriber(row pgx.Row) (*portfolio.Subscriber, error) {
	var sub portfolio.Subscriber

	var status string

	err := row.Scan(&sub.ID, &sub.Email, &status, &sub.UnsubscribeToken, &sub.SubscribedAt)
	if err != nil {
		return nil, err
	}

	sub.Status = portfolio.SubscriberStatus(status)

	return &sub, nil
}
