// Package engine applies an action plan transactionally: article creation
// with derived titles and tags, candidate updates, and citation upkeep.
package engine

import (
	"context"
	"errors"

	"voxnote/apperr"
	"voxnote/logger"
	"voxnote/models"
	"voxnote/resolver"
)

// Store is the repository surface the engine writes through. All calls made
// inside Apply share one transaction via WithTransaction's context.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	GetArticle(ctx context.Context, id, userID int64) (*models.Article, error)
	CreateArticle(ctx context.Context, userID int64, title, summary, content string, tagIDs []int64, tagNames []string) (int64, error)
	UpdateArticle(ctx context.Context, id, userID int64, title, summary, content string) (int, error)
	GetOrCreateTags(ctx context.Context, userID int64, names []string) ([]int64, error)
	ReplaceCitations(ctx context.Context, citingID int64, refs []int64) error
}

// CreatedSummary identifies one article created by Apply.
type CreatedSummary struct {
	NewID         int64    `json:"new_id"`
	Title         string   `json:"title"`
	ContentLength int      `json:"content_length"`
	Tags          []string `json:"tags,omitempty"`
	CitedIDs      []int64  `json:"cited_ids,omitempty"`
}

// UpdatedSummary identifies one article updated by Apply.
type UpdatedSummary struct {
	ID            int64   `json:"id"`
	ContentLength int     `json:"content_length"`
	Mode          string  `json:"mode"`
	CitedIDs      []int64 `json:"cited_ids,omitempty"`
}

// Result aggregates the outcomes of one Apply invocation.
// CreatedCount + UpdatedCount always equals the number of input actions.
type Result struct {
	CreatedCount    int
	UpdatedCount    int
	TotalProcessed  int
	CreatedArticles []CreatedSummary
	UpdatedArticles []UpdatedSummary
}

type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// Apply executes the whole action plan inside one transaction. Any sub-step
// failure rolls back every prior write and surfaces a single kind-tagged
// error.
func (e *Engine) Apply(ctx context.Context, actions []resolver.Action, userID int64) (*Result, error) {
	result := &Result{
		CreatedArticles: []CreatedSummary{},
		UpdatedArticles: []UpdatedSummary{},
	}

	err := e.store.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, action := range actions {
			switch {
			case action.Create != nil:
				summary, err := e.applyCreate(txCtx, action.Create, userID)
				if err != nil {
					return err
				}
				result.CreatedArticles = append(result.CreatedArticles, *summary)
				result.CreatedCount++
			case action.Update != nil:
				summary, err := e.applyUpdate(txCtx, action.Update, userID)
				if err != nil {
					return err
				}
				result.UpdatedArticles = append(result.UpdatedArticles, *summary)
				result.UpdatedCount++
			default:
				return apperr.New(apperr.ProcessingFailed, "action carries neither create nor update")
			}
		}
		return nil
	})
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.Wrap(err, apperr.ProcessingFailed, "failed to apply action plan")
	}

	result.TotalProcessed = result.CreatedCount + result.UpdatedCount
	logger.InfoWithFields("action plan applied", logger.Fields{
		"user_id": userID,
		"created": result.CreatedCount,
		"updated": result.UpdatedCount,
	})
	return result, nil
}

func (e *Engine) applyCreate(ctx context.Context, action *resolver.CreateArticle, userID int64) (*CreatedSummary, error) {
	title := DeriveTitle(action.Content)
	summary := DeriveSummary(action.Content)
	tagNames := DeriveTags(action.Content)

	tagIDs, err := e.store.GetOrCreateTags(ctx, userID, tagNames)
	if err != nil {
		return nil, err
	}

	id, err := e.store.CreateArticle(ctx, userID, title, summary, action.Content, tagIDs, tagNames)
	if err != nil {
		return nil, err
	}

	cited := ExtractCitations(action.Content, id)
	if err := e.store.ReplaceCitations(ctx, id, cited); err != nil {
		return nil, err
	}

	return &CreatedSummary{
		NewID:         id,
		Title:         title,
		ContentLength: len([]rune(action.Content)),
		Tags:          tagNames,
		CitedIDs:      cited,
	}, nil
}

func (e *Engine) applyUpdate(ctx context.Context, action *resolver.UpdateArticle, userID int64) (*UpdatedSummary, error) {
	existing, err := e.store.GetArticle(ctx, action.TargetID, userID)
	if err != nil {
		return nil, err
	}

	content := action.Content
	if action.Mode == resolver.ModeAppend && existing.Content != "" {
		content = existing.Content + "\n\n" + action.Content
	}

	title := action.Title
	if title == "" {
		title = existing.Title
	}
	summary := action.Summary
	if summary == "" {
		summary = DeriveSummary(content)
	}

	length, err := e.store.UpdateArticle(ctx, action.TargetID, userID, title, summary, content)
	if err != nil {
		return nil, err
	}

	cited := ExtractCitations(content, action.TargetID)
	if err := e.store.ReplaceCitations(ctx, action.TargetID, cited); err != nil {
		return nil, err
	}

	return &UpdatedSummary{
		ID:            action.TargetID,
		ContentLength: length,
		Mode:          string(action.Mode),
		CitedIDs:      cited,
	}, nil
}
