package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish is a function that publishes a typed event.
type Publish[T any] func(event *T) error

// PublisherGroup owns one publisher connection. Typed publish functions
// are derived from it with PublishFuncOf and share its lifecycle, so the
// container shuts the connection down exactly once.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup creates a new publisher group.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// PublishFuncOf derives a publish function for one event type, bound to
// one topic. Events are serialized as JSON.
func PublishFuncOf[T any](g *PublisherGroup, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event for %s: %w", topic, err)
		}

		return g.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
