package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/models"
)

type RelationshipRepository struct {
	col *mongo.Collection
}

func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{col: db.Collection("article_relationships")}
}

// DeleteByCiting removes every citation edge originating from citingID.
func (r *RelationshipRepository) DeleteByCiting(ctx context.Context, citingID int64) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"citing_id": citingID})
	return err
}

// InsertMany records citation edges from citingID to each referenced id.
func (r *RelationshipRepository) InsertMany(ctx context.Context, citingID int64, referencedIDs []int64) error {
	if len(referencedIDs) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(referencedIDs))
	for _, refID := range referencedIDs {
		docs = append(docs, models.ArticleRelationship{
			CitingID:     citingID,
			ReferencedID: refID,
			CreatedAt:    now,
		})
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

// FindByCiting returns the referenced ids cited by citingID.
func (r *RelationshipRepository) FindByCiting(ctx context.Context, citingID int64) ([]int64, error) {
	cur, err := r.col.Find(ctx, bson.M{"citing_id": citingID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []int64
	for cur.Next(ctx) {
		var rel models.ArticleRelationship
		if err := cur.Decode(&rel); err != nil {
			return nil, err
		}
		out = append(out, rel.ReferencedID)
	}
	return out, cur.Err()
}
