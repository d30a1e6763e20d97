package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/serroba/portfolio-go/internal/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMailer struct {
	sent    []notify.Email
	failFor map[string]error
}

func newMockMailer() *mockMailer {
	return &mockMailer{failFor: map[string]error{}}
}

func (m *mockMailer) Send(_ context.Context, email notify.Email) error {
	if err := m.failFor[email.To]; err != nil {
		return err
	}

	m.sent = append(m.sent, email)

	return nil
}

type mockSubscriberRepo struct {
	active  []*portfolio.Subscriber
	listErr error
}

func (m *mockSubscriberRepo) AddSubscriber(_ context.Context, _ *portfolio.Subscriber) error {
	return nil
}

func (m *mockSubscriberRepo) GetSubscriberByToken(_ context.Context, _ string) (*portfolio.Subscriber, error) {
	return nil, portfolio.ErrNotFound
}

func (m *mockSubscriberRepo) ListActiveSubscribers(_ context.Context) ([]*portfolio.Subscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	return m.active, nil
}

func (m *mockSubscriberRepo) ListSubscribers(_ context.Context) ([]*portfolio.Subscriber, error) {
	return m.active, nil
}

func (m *mockSubscriberRepo) UpdateSubscriberStatus(_ context.Context, _ string, _ portfolio.SubscriberStatus) error {
	return nil
}

func activeSubscriber(email, token string) *portfolio.Subscriber {
	return &portfolio.Subscriber{
		ID:               uuid.New(),
		Email:            email,
		Status:           portfolio.SubscriberActive,
		UnsubscribeToken: token,
	}
}

func TestHandleContactMessage(t *testing.T) {
	t.Run("mails the site owner", func(t *testing.T) {
		mailer := newMockMailer()
		dispatcher := notify.NewDispatcher(
			&mockSubscriberRepo{},
			mailer,
			"owner@example.com",
			"https://example.com",
			zap.NewNop(),
		)

		event := &notify.ContactMessageEvent{
			Name:    "Jane",
			Email:   "jane@example.com",
			Subject: "Hello",
			Body:    "Nice site!",
		}

		err := dispatcher.HandleContactMessage(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "owner@example.com", mailer.sent[0].To)
		assert.Contains(t, mailer.sent[0].Subject, "Hello")
		assert.Contains(t, mailer.sent[0].Body, "jane@example.com")
		assert.Contains(t, mailer.sent[0].Body, "Nice site!")
	})

	t.Run("includes the submitting client when known", func(t *testing.T) {
		mailer := newMockMailer()
		dispatcher := notify.NewDispatcher(
			&mockSubscriberRepo{},
			mailer,
			"owner@example.com",
			"https://example.com",
			zap.NewNop(),
		)

		event := &notify.ContactMessageEvent{
			Name:      "Jane",
			Email:     "jane@example.com",
			Body:      "hi",
			ClientIP:  "203.0.113.7",
			UserAgent: "Mozilla/5.0",
		}

		err := dispatcher.HandleContactMessage(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Contains(t, mailer.sent[0].Body, "203.0.113.7")
		assert.Contains(t, mailer.sent[0].Body, "Mozilla/5.0")
	})

	t.Run("propagates mailer errors", func(t *testing.T) {
		mailer := newMockMailer()
		mailer.failFor["owner@example.com"] = errors.New("smtp down")

		dispatcher := notify.NewDispatcher(
			&mockSubscriberRepo{},
			mailer,
			"owner@example.com",
			"https://example.com",
			zap.NewNop(),
		)

		err := dispatcher.HandleContactMessage(context.Background(), &notify.ContactMessageEvent{})

		assert.Error(t, err)
	})
}

func TestHandleNewsletterIssue(t *testing.T) {
	t.Run("delivers to every active subscriber with an unsubscribe link", func(t *testing.T) {
		mailer := newMockMailer()
		repo := &mockSubscriberRepo{active: []*portfolio.Subscriber{
			activeSubscriber("a@example.com", "tok-a"),
			activeSubscriber("b@example.com", "tok-b"),
		}}

		dispatcher := notify.NewDispatcher(repo, mailer, "owner@example.com", "https://example.com", zap.NewNop())

		event := &notify.NewsletterIssueEvent{
			IssueID: "issue-1",
			Subject: "Issue #1",
			Body:    "Fresh posts inside.",
		}

		err := dispatcher.HandleNewsletterIssue(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, mailer.sent, 2)
		assert.Equal(t, "Issue #1", mailer.sent[0].Subject)
		assert.Contains(t, mailer.sent[0].Body, "https://example.com/newsletter/unsubscribe/tok-a")
		assert.Contains(t, mailer.sent[1].Body, "https://example.com/newsletter/unsubscribe/tok-b")
	})

	t.Run("skips failing addresses and keeps delivering", func(t *testing.T) {
		mailer := newMockMailer()
		mailer.failFor["a@example.com"] = errors.New("mailbox full")

		repo := &mockSubscriberRepo{active: []*portfolio.Subscriber{
			activeSubscriber("a@example.com", "tok-a"),
			activeSubscriber("b@example.com", "tok-b"),
		}}

		dispatcher := notify.NewDispatcher(repo, mailer, "owner@example.com", "https://example.com", zap.NewNop())

		err := dispatcher.HandleNewsletterIssue(context.Background(), &notify.NewsletterIssueEvent{IssueID: "issue-1"})

		require.NoError(t, err, "one bad address must not abort the send")
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "b@example.com", mailer.sent[0].To)
	})

	t.Run("returns error when the subscriber list cannot be loaded", func(t *testing.T) {
		repo := &mockSubscriberRepo{listErr: errors.New("db down")}
		dispatcher := notify.NewDispatcher(repo, newMockMailer(), "owner@example.com", "https://example.com", zap.NewNop())

		err := dispatcher.HandleNewsletterIssue(context.Background(), &notify.NewsletterIssueEvent{IssueID: "issue-1"})

		assert.Error(t, err)
	})
}
