package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/models"
)

type ModelCallLogRepository struct {
	col *mongo.Collection
}

func NewModelCallLogRepository(db *mongo.Database) *ModelCallLogRepository {
	return &ModelCallLogRepository{col: db.Collection("model_call_logs")}
}

func (r *ModelCallLogRepository) Insert(ctx context.Context, log models.ModelCallLog) (*mongo.InsertOneResult, error) {
	if log.RequestedAt.IsZero() {
		log.RequestedAt = time.Now()
	}
	return r.col.InsertOne(ctx, log)
}
