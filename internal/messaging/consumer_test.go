package messaging_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSubscriber struct {
	msgChan      chan *message.Message
	subscribeErr error
	mu           sync.Mutex
	closed       bool
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{
		msgChan: make(chan *message.Message, 10),
	}
}

func (m *mockSubscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}

	return m.msgChan, nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.msgChan)
	}

	return nil
}

func newContactConsumer(sub message.Subscriber, handler messaging.Handler[notify.ContactMessageEvent]) *messaging.Consumer[notify.ContactMessageEvent] {
	return messaging.NewConsumer(sub, notify.TopicContactMessage, handler, zap.NewNop())
}

func TestConsumer_Start(t *testing.T) {
	t.Run("starts successfully", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := newContactConsumer(sub, func(_ context.Context, _ *notify.ContactMessageEvent) error {
			return nil
		})

		err := consumer.Start(context.Background())

		require.NoError(t, err)
		assert.Equal(t, notify.TopicContactMessage, consumer.Topic())

		_ = consumer.Shutdown()
	})

	t.Run("returns error when subscribe fails", func(t *testing.T) {
		sub := &mockSubscriber{subscribeErr: errors.New("subscribe error")}
		consumer := newContactConsumer(sub, func(_ context.Context, _ *notify.ContactMessageEvent) error {
			return nil
		})

		err := consumer.Start(context.Background())

		assert.Error(t, err)
	})
}

func TestConsumer_HandleMessage(t *testing.T) {
	t.Run("acks on successful handling", func(t *testing.T) {
		sub := newMockSubscriber()

		var received *notify.ContactMessageEvent

		consumer := newContactConsumer(sub, func(_ context.Context, event *notify.ContactMessageEvent) error {
			received = event

			return nil
		})

		require.NoError(t, consumer.Start(context.Background()))

		payload, _ := json.Marshal(&notify.ContactMessageEvent{ID: "msg-1", Email: "jane@example.com"})
		msg := message.NewMessage(uuid.NewString(), payload)

		sub.msgChan <- msg

		select {
		case <-msg.Acked():
			assert.Equal(t, "msg-1", received.ID)
			assert.Equal(t, "jane@example.com", received.Email)
		case <-msg.Nacked():
			t.Fatal("message was nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ack")
		}

		_ = consumer.Shutdown()
	})

	t.Run("nacks on unmarshal error", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := newContactConsumer(sub, func(_ context.Context, _ *notify.ContactMessageEvent) error {
			return nil
		})

		require.NoError(t, consumer.Start(context.Background()))

		msg := message.NewMessage(uuid.NewString(), []byte("not json"))

		sub.msgChan <- msg

		select {
		case <-msg.Nacked():
		case <-msg.Acked():
			t.Fatal("message should have been nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for nack")
		}

		_ = consumer.Shutdown()
	})

	t.Run("nacks on handler error for redelivery", func(t *testing.T) {
		sub := newMockSubscriber()
		consumer := newContactConsumer(sub, func(_ context.Context, _ *notify.ContactMessageEvent) error {
			return errors.New("handler error")
		})

		require.NoError(t, consumer.Start(context.Background()))

		payload, _ := json.Marshal(&notify.ContactMessageEvent{ID: "msg-1"})
		msg := message.NewMessage(uuid.NewString(), payload)

		sub.msgChan <- msg

		select {
		case <-msg.Nacked():
		case <-msg.Acked():
			t.Fatal("message should have been nacked")
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for nack")
		}

		_ = consumer.Shutdown()
	})
}

func TestConsumer_Shutdown(t *testing.T) {
	sub := newMockSubscriber()
	consumer := newContactConsumer(sub, func(_ context.Context, _ *notify.ContactMessageEvent) error {
		return nil
	})

	require.NoError(t, consumer.Start(context.Background()))
	require.NoError(t, consumer.Shutdown())
}
