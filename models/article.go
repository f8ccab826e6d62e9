package models

import "time"

// Article statuses
const (
	ArticleStatusPublished = "published"
	ArticleStatusArchived  = "archived"
)

// Article is a generated article document (Markdown content).
// Collection: articles
type Article struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    int64     `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Summary   string    `bson:"summary" json:"summary"`
	Content   string    `bson:"content" json:"content"`
	Status    string    `bson:"status" json:"status"`
	TagIDs    []int64   `bson:"tag_ids" json:"tag_ids"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ArticleRelationship records a citation edge between two articles
// (citing article contains a [[cite:N]] marker for the referenced one).
// Collection: article_relationships
type ArticleRelationship struct {
	CitingID     int64     `bson:"citing_id" json:"citing_id"`
	ReferencedID int64     `bson:"referenced_id" json:"referenced_id"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
