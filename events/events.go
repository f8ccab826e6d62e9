// Package events defines the outcome events published after a processing
// run commits.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	ArticleCreated EventType = "article.created"
	ArticleUpdated EventType = "article.updated"
)

// BaseEvent carries the envelope fields shared by every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

func NewBase(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    "voxnote",
		Version:   "1.0",
	}
}

// ArticleCreatedEvent signals that a processing run created a new article.
type ArticleCreatedEvent struct {
	BaseEvent
	ArticleID     int64    `json:"article_id"`
	UserID        int64    `json:"user_id"`
	TranscriptID  int64    `json:"transcript_id"`
	Title         string   `json:"title"`
	ContentLength int      `json:"content_length"`
	Tags          []string `json:"tags,omitempty"`
	CitedIDs      []int64  `json:"cited_ids,omitempty"`
}

// ArticleUpdatedEvent signals that a processing run modified an existing
// article.
type ArticleUpdatedEvent struct {
	BaseEvent
	ArticleID     int64   `json:"article_id"`
	UserID        int64   `json:"user_id"`
	TranscriptID  int64   `json:"transcript_id"`
	Mode          string  `json:"mode"`
	ContentLength int     `json:"content_length"`
	CitedIDs      []int64 `json:"cited_ids,omitempty"`
}

// SerializeEvent marshals an event and returns its type for routing.
func SerializeEvent(event interface{}) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case ArticleCreatedEvent:
		eventType = e.Type
	case ArticleUpdatedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent unmarshals data into the struct matching eventType.
func DeserializeEvent(eventType EventType, data []byte) (interface{}, error) {
	var event interface{}

	switch eventType {
	case ArticleCreated:
		event = &ArticleCreatedEvent{}
	case ArticleUpdated:
		event = &ArticleUpdatedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
