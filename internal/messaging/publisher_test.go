package messaging_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (m *mockPublisher) Publish(topic string, msgs ...*message.Message) error {
	if m.publishErr != nil {
		return m.publishErr
	}

	m.topic = topic
	m.messages = append(m.messages, msgs...)

	return nil
}

func (m *mockPublisher) Close() error {
	return m.closeErr
}

func TestPublishFuncOf(t *testing.T) {
	t.Run("publishes the event as JSON on the bound topic", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)
		publish := messaging.PublishFuncOf[notify.ContactMessageEvent](group, notify.TopicContactMessage)

		event := &notify.ContactMessageEvent{
			ID:         "msg-1",
			Name:       "Jane",
			Email:      "jane@example.com",
			Body:       "hi",
			ReceivedAt: time.Now(),
		}

		err := publish(event)

		require.NoError(t, err)
		assert.Equal(t, notify.TopicContactMessage, mock.topic)
		require.Len(t, mock.messages, 1)
		assert.NotEmpty(t, mock.messages[0].UUID)
		assert.Contains(t, string(mock.messages[0].Payload), `"id":"msg-1"`)
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		mock := &mockPublisher{publishErr: errors.New("publish error")}
		group := messaging.NewPublisherGroup(mock)
		publish := messaging.PublishFuncOf[notify.ContactMessageEvent](group, notify.TopicContactMessage)

		err := publish(&notify.ContactMessageEvent{ID: "msg-1"})

		assert.Error(t, err)
	})

	t.Run("derived functions share one publisher", func(t *testing.T) {
		mock := &mockPublisher{}
		group := messaging.NewPublisherGroup(mock)

		publishContact := messaging.PublishFuncOf[notify.ContactMessageEvent](group, notify.TopicContactMessage)
		publishIssue := messaging.PublishFuncOf[notify.NewsletterIssueEvent](group, notify.TopicNewsletterIssue)

		require.NoError(t, publishContact(&notify.ContactMessageEvent{ID: "msg-1"}))
		require.NoError(t, publishIssue(&notify.NewsletterIssueEvent{IssueID: "issue-1"}))

		assert.Len(t, mock.messages, 2)
	})
}

func TestPublisherGroup_Shutdown(t *testing.T) {
	t.Run("closes the underlying publisher", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{})

		require.NoError(t, group.Shutdown())
	})

	t.Run("returns error when close fails", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&mockPublisher{closeErr: errors.New("close error")})

		assert.Error(t, group.Shutdown())
	})
}
