package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/models"
)

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection("articles")}
}

// FindByID returns the article with the given id owned by userID.
func (r *ArticleRepository) FindByID(ctx context.Context, id, userID int64) (*models.Article, error) {
	var a models.Article
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIDs returns all articles among ids owned by userID, unordered.
// Callers detect and report missing ids.
func (r *ArticleRepository) FindByIDs(ctx context.Context, ids []int64, userID int64) ([]models.Article, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistingIDs reports which of ids exist, regardless of owner. Used for
// citation validation.
func (r *ArticleRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	if len(ids) == 0 {
		return map[int64]bool{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	existing := make(map[int64]bool, len(ids))
	for cur.Next(ctx) {
		var doc struct {
			ID int64 `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		existing[doc.ID] = true
	}
	return existing, cur.Err()
}

// Insert stores a new article with the id already allocated.
func (r *ArticleRepository) Insert(ctx context.Context, a *models.Article) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = models.ArticleStatusPublished
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

// UpdateContent replaces title/summary/content of an article and bumps
// updated_at. Returns mongo.ErrNoDocuments when no owned article matched.
func (r *ArticleRepository) UpdateContent(ctx context.Context, id, userID int64, title, summary, content string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{
			"title":      title,
			"summary":    summary,
			"content":    content,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
