// Package eventbus publishes processing outcome events to Kafka.
// Publishing is best-effort: a failed publish is logged and never fails the
// processing run that produced the event.
package eventbus

import (
	"context"
	"encoding/json"

	"voxnote/events"
)

// TopicArticleEvents carries all article outcome events.
const TopicArticleEvents = "voxnote.article.events"

// Publisher is the outbound event surface. A nil Publisher disables
// eventing.
type Publisher interface {
	Publish(ctx context.Context, event interface{}) error
	Close()
}

// NopPublisher discards every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, interface{}) error { return nil }
func (NopPublisher) Close()                                     {}

// envelope is the wire payload: the serialized event plus its routing type.
type envelope struct {
	ID      string           `json:"id"`
	Type    events.EventType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}
