package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/models"
)

type TagRepository struct {
	col *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{col: db.Collection("tags")}
}

// FindByNames returns the user's tags matching names, keyed by name.
func (r *TagRepository) FindByNames(ctx context.Context, userID int64, names []string) (map[string]models.Tag, error) {
	if len(names) == 0 {
		return map[string]models.Tag{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID, "name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]models.Tag, len(names))
	for cur.Next(ctx) {
		var t models.Tag
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out[t.Name] = t
	}
	return out, cur.Err()
}

// Insert stores a new tag with the id already allocated.
func (r *TagRepository) Insert(ctx context.Context, t *models.Tag) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, t)
	return err
}
