package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"voxnote/apperr"
	"voxnote/db"
	"voxnote/models"
)

// Store is the content repository adapter: owner-scoped reads of transcripts
// and candidate articles, and the writes performed by the execution engine.
// All errors crossing this boundary are kind-tagged.
type Store struct {
	database    *mongo.Database
	transcripts *TranscriptRepository
	articles    *ArticleRepository
	tags        *TagRepository
	rels        *RelationshipRepository
}

func NewStore(database *mongo.Database) *Store {
	return &Store{
		database:    database,
		transcripts: NewTranscriptRepository(database),
		articles:    NewArticleRepository(database),
		tags:        NewTagRepository(database),
		rels:        NewRelationshipRepository(database),
	}
}

// Ping reports repository connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := db.Ping(ctx); err != nil {
		return apperr.Wrap(err, apperr.DBConnectionFailed, "repository unreachable")
	}
	return nil
}

// WithTransaction runs fn inside one multi-document transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTransaction(ctx, fn)
}

// GetTranscript fetches a transcript by id, scoped to its owner. A missing
// or foreign-owned id surfaces as DB_TRANSCRIPT_NOT_FOUND; an empty
// transcript body is treated the same way.
func (s *Store) GetTranscript(ctx context.Context, id, userID int64) (*models.Transcript, error) {
	t, err := s.transcripts.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.DBTranscriptNotFound, "transcript %d not found", id)
		}
		return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to get transcript %d", id)
	}
	if strings.TrimSpace(t.Text) == "" {
		return nil, apperr.New(apperr.DBTranscriptNotFound, "transcript %d is empty or contains no text", id)
	}
	return t, nil
}

// GetArticles fetches candidate articles by id, scoped to their owner, and
// returns them in the order of ids. Any missing id fails the whole fetch
// with DB_ARTICLE_NOT_FOUND naming the absent ids.
func (s *Store) GetArticles(ctx context.Context, ids []int64, userID int64) ([]models.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.articles.FindByIDs(ctx, ids, userID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to get articles")
	}

	byID := make(map[int64]models.Article, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	var missing []string
	ordered := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			missing = append(missing, fmt.Sprintf("%d", id))
			continue
		}
		ordered = append(ordered, a)
	}
	if len(missing) > 0 {
		return nil, apperr.New(apperr.DBArticleNotFound, "articles not found: [%s]", strings.Join(missing, ", "))
	}
	return ordered, nil
}

// GetArticle fetches one owned article, tagging absence as DB_ARTICLE_NOT_FOUND.
func (s *Store) GetArticle(ctx context.Context, id, userID int64) (*models.Article, error) {
	a, err := s.articles.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.DBArticleNotFound, "article %d not found", id)
		}
		return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to get article %d", id)
	}
	return a, nil
}

// GetOrCreateTags resolves tag names to ids for one user, creating any that
// do not exist yet. Returned ids follow the input name order.
func (s *Store) GetOrCreateTags(ctx context.Context, userID int64, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}
	existing, err := s.tags.FindByNames(ctx, userID, names)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to look up tags")
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if t, ok := existing[name]; ok {
			ids = append(ids, t.ID)
			continue
		}
		id, err := db.NextID(ctx, s.database, "tags")
		if err != nil {
			return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to allocate tag id")
		}
		t := models.Tag{ID: id, UserID: userID, Name: name}
		if err := s.tags.Insert(ctx, &t); err != nil {
			return nil, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to create tag %q", name)
		}
		existing[name] = t
		ids = append(ids, id)
	}
	return ids, nil
}

// CreateArticle creates an article with its tag associations and returns the
// new id.
func (s *Store) CreateArticle(ctx context.Context, userID int64, title, summary, content string, tagIDs []int64, tagNames []string) (int64, error) {
	id, err := db.NextID(ctx, s.database, "articles")
	if err != nil {
		return 0, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to allocate article id")
	}
	a := models.Article{
		ID:      id,
		UserID:  userID,
		Title:   title,
		Summary: summary,
		Content: content,
		TagIDs:  tagIDs,
		Tags:    tagNames,
	}
	if err := s.articles.Insert(ctx, &a); err != nil {
		return 0, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to create article")
	}
	return id, nil
}

// UpdateArticle replaces an owned article's title/summary/content and
// returns the resulting content length in runes.
func (s *Store) UpdateArticle(ctx context.Context, id, userID int64, title, summary, content string) (int, error) {
	err := s.articles.UpdateContent(ctx, id, userID, title, summary, content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, apperr.New(apperr.DBArticleNotFound, "article %d not found", id)
		}
		return 0, apperr.Wrap(err, apperr.DBConnectionFailed, "failed to update article %d", id)
	}
	return len([]rune(content)), nil
}

// ReplaceCitations replaces the citation edges of citingID with refs.
// Unknown referenced ids are dropped silently; self references must already
// be filtered by the caller.
func (s *Store) ReplaceCitations(ctx context.Context, citingID int64, refs []int64) error {
	if err := s.rels.DeleteByCiting(ctx, citingID); err != nil {
		return apperr.Wrap(err, apperr.DBConnectionFailed, "failed to clear citations of article %d", citingID)
	}
	if len(refs) == 0 {
		return nil
	}
	existing, err := s.articles.ExistingIDs(ctx, refs)
	if err != nil {
		return apperr.Wrap(err, apperr.DBConnectionFailed, "failed to validate citation targets")
	}
	valid := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if existing[ref] {
			valid = append(valid, ref)
		}
	}
	if err := s.rels.InsertMany(ctx, citingID, valid); err != nil {
		return apperr.Wrap(err, apperr.DBConnectionFailed, "failed to record citations of article %d", citingID)
	}
	return nil
}
