package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRunnable struct {
	topic       string
	started     bool
	shutdown    bool
	startErr    error
	shutdownErr error
}

func (m *mockRunnable) Topic() string {
	return m.topic
}

func (m *mockRunnable) Start(_ context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}

	m.started = true

	return nil
}

func (m *mockRunnable) Shutdown() error {
	m.shutdown = true

	return m.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts all consumers", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
		contactConsumer := &mockRunnable{}
		issueConsumer := &mockRunnable{}

		group.Add(contactConsumer)
		group.Add(issueConsumer)

		err := group.Start(context.Background())

		require.NoError(t, err)
		assert.True(t, contactConsumer.started)
		assert.True(t, issueConsumer.started)
	})

	t.Run("rolls back already-started consumers on failure", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
		contactConsumer := &mockRunnable{topic: "contact.message.received"}
		issueConsumer := &mockRunnable{topic: "newsletter.issue.queued", startErr: errors.New("start error")}

		group.Add(contactConsumer)
		group.Add(issueConsumer)

		err := group.Start(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "newsletter.issue.queued")
		assert.True(t, contactConsumer.started)
		assert.True(t, contactConsumer.shutdown)
		assert.False(t, issueConsumer.started)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("shuts down all consumers and the subscriber", func(t *testing.T) {
		sub := newMockSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())
		contactConsumer := &mockRunnable{}
		issueConsumer := &mockRunnable{}

		group.Add(contactConsumer)
		group.Add(issueConsumer)
		_ = group.Start(context.Background())

		err := group.Shutdown()

		require.NoError(t, err)
		assert.True(t, contactConsumer.shutdown)
		assert.True(t, issueConsumer.shutdown)
		assert.True(t, sub.closed)
	})

	t.Run("returns first error but shuts down all", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newMockSubscriber(), zap.NewNop())
		contactConsumer := &mockRunnable{shutdownErr: errors.New("shutdown error 1")}
		issueConsumer := &mockRunnable{shutdownErr: errors.New("shutdown error 2")}

		group.Add(contactConsumer)
		group.Add(issueConsumer)
		_ = group.Start(context.Background())

		err := group.Shutdown()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shutdown error 1")
		assert.True(t, contactConsumer.shutdown)
		assert.True(t, issueConsumer.shutdown)
	})
}
