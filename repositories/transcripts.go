package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/models"
)

type TranscriptRepository struct {
	col *mongo.Collection
}

func NewTranscriptRepository(db *mongo.Database) *TranscriptRepository {
	return &TranscriptRepository{col: db.Collection("transcripts")}
}

// FindByID returns the transcript with the given id owned by userID.
func (r *TranscriptRepository) FindByID(ctx context.Context, id, userID int64) (*models.Transcript, error) {
	var t models.Transcript
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Insert stores a transcript. Used by fixtures and ingestion, not by the
// processing pipeline itself.
func (r *TranscriptRepository) Insert(ctx context.Context, t *models.Transcript) error {
	_, err := r.col.InsertOne(ctx, t)
	return err
}
