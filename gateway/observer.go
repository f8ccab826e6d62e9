package gateway

import (
	"context"
	"time"

	"voxnote/logger"
	"voxnote/models"
	"voxnote/repositories"
)

// CallRecord describes one completed gateway call, successful or not.
type CallRecord struct {
	Profile   string
	ModelName string
	Prompt    string
	Response  string
	Attempts  int
	Duration  time.Duration
	Err       error
}

// Observer receives a record for every gateway call. Recording must never
// fail the call itself.
type Observer interface {
	Record(ctx context.Context, rec CallRecord)
}

// NopObserver discards all records.
type NopObserver struct{}

func (NopObserver) Record(context.Context, CallRecord) {}

// MongoObserver persists call records for debugging. Enabled via the
// debug.log_model_calls config flag.
type MongoObserver struct {
	logs *repositories.ModelCallLogRepository
}

func NewMongoObserver(logs *repositories.ModelCallLogRepository) *MongoObserver {
	return &MongoObserver{logs: logs}
}

func (o *MongoObserver) Record(ctx context.Context, rec CallRecord) {
	entry := models.ModelCallLog{
		Profile:     rec.Profile,
		ModelName:   rec.ModelName,
		Prompt:      rec.Prompt,
		Response:    rec.Response,
		Attempts:    rec.Attempts,
		DurationMs:  rec.Duration.Milliseconds(),
		RequestedAt: time.Now().Add(-rec.Duration),
		CompletedAt: time.Now(),
	}
	if rec.Err != nil {
		msg := rec.Err.Error()
		entry.ErrorMessage = &msg
	}
	if _, err := o.logs.Insert(ctx, entry); err != nil {
		logger.WarnWithFields("failed to persist model call log", logger.Fields{
			"profile": rec.Profile,
			"error":   err.Error(),
		})
	}
}
