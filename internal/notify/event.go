package notify

import "time"

const (
	// TopicContactMessage carries contact form submissions to the worker.
	TopicContactMessage = "contact.message.received"
	// TopicNewsletterIssue carries queued newsletter issues to the worker.
	TopicNewsletterIssue = "newsletter.issue.queued"
)

// ContactMessageEvent is emitted when a contact form submission is stored.
// ClientIP and UserAgent come from the submitting request and give the
// owner notification enough context to spot abuse.
type ContactMessageEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NewsletterIssueEvent is emitted when an admin queues a newsletter issue.
// The worker fans it out to every active subscriber.
type NewsletterIssueEvent struct {
	IssueID  string    `json:"issueId"`
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queuedAt"`
}
