package notify

import (
	"context"

	"go.uber.org/zap"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer hands messages to the delivery provider. The provider itself is
// an external collaborator; implementations only adapt to its API.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer is a Mailer that only logs, for development and tests.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a logging mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	m.logger.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)

	return nil
}
