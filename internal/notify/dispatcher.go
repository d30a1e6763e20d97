package notify

import (
	"context"
	"fmt"

	"github.com/serroba/portfolio-go/internal/portfolio"
	"go.uber.org/zap"
)

// Dispatcher turns events into outbound email on the worker side.
type Dispatcher struct {
	subscribers portfolio.SubscriberRepository
	mailer      Mailer
	ownerEmail  string
	baseURL     string
	logger      *zap.Logger
}

// NewDispatcher creates a dispatcher. ownerEmail receives contact form
// notifications; baseURL is used to build unsubscribe links.
func NewDispatcher(
	subscribers portfolio.SubscriberRepository,
	mailer Mailer,
	ownerEmail string,
	baseURL string,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		mailer:      mailer,
		ownerEmail:  ownerEmail,
		baseURL:     baseURL,
		logger:      logger,
	}
}

// HandleContactMessage notifies the site owner about a contact submission.
func (d *Dispatcher) HandleContactMessage(ctx context.Context, event *ContactMessageEvent) error {
	body := fmt.Sprintf("From: %s <%s>\n\n%s", event.Name, event.Email, event.Body)

	if event.ClientIP != "" {
		body += fmt.Sprintf("\n\n--\nSent from %s (%s)", event.ClientIP, event.UserAgent)
	}

	return d.mailer.Send(ctx, Email{
		To:      d.ownerEmail,
		Subject: fmt.Sprintf("Contact form: %s", event.Subject),
		Body:    body,
	})
}

// HandleNewsletterIssue delivers a queued issue to every active subscriber.
// Per-subscriber delivery failures are logged and skipped so one bad
// address doesn't abort the whole send; the message is only nacked when
// the subscriber list itself cannot be loaded.
func (d *Dispatcher) HandleNewsletterIssue(ctx context.Context, event *NewsletterIssueEvent) error {
	subs, err := d.subscribers.ListActiveSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("list active subscribers: %w", err)
	}

	delivered := 0

	for _, sub := range subs {
		email := Email{
			To:      sub.Email,
			Subject: event.Subject,
			Body: fmt.Sprintf("%s\n\n--\nUnsubscribe: %s/newsletter/unsubscribe/%s",
				event.Body, d.baseURL, sub.UnsubscribeToken),
		}

		if err := d.mailer.Send(ctx, email); err != nil {
			d.logger.Error("newsletter delivery failed",
				zap.String("issueId", event.IssueID),
				zap.String("subscriberId", sub.ID.String()),
				zap.Error(err),
			)

			continue
		}

		delivered++
	}

	d.logger.Info("newsletter issue dispatched",
		zap.String("issueId", event.IssueID),
		zap.Int("delivered", delivered),
		zap.Int("subscribers", len(subs)),
	)

	return nil
}
