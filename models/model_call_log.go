package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModelCallLog stores one model gateway call for debugging (request/response
// capture, enabled via debug config).
// Collection: model_call_logs
type ModelCallLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Profile      string             `bson:"profile" json:"profile"`
	ModelName    string             `bson:"model_name" json:"model_name"`
	Prompt       string             `bson:"prompt" json:"prompt"`
	Response     string             `bson:"response" json:"response"`
	Attempts     int                `bson:"attempts" json:"attempts"`
	DurationMs   int64              `bson:"duration_ms" json:"duration_ms"`
	ErrorMessage *string            `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RequestedAt  time.Time          `bson:"requested_at" json:"requested_at"`
	CompletedAt  time.Time          `bson:"completed_at" json:"completed_at"`
}
