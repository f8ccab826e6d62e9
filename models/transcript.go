package models

import "time"

// Transcript is a confirmed voice transcription owned by a user.
// Collection: transcripts
type Transcript struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    int64     `bson:"user_id" json:"user_id"`
	AudioURL  string    `bson:"audio_url" json:"audio_url"`
	Text      string    `bson:"text" json:"text"`
	Duration  int       `bson:"duration" json:"duration"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
