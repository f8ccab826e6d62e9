// Package processor glues the pipeline together: fetch transcript and
// candidates, analyze, resolve, apply, and publish the outcome.
package processor

import (
	"context"

	"voxnote/analyzer"
	"voxnote/config"
	"voxnote/engine"
	"voxnote/eventbus"
	"voxnote/events"
	"voxnote/logger"
	"voxnote/models"
	"voxnote/resolver"
)

const (
	ServiceName    = "voxnote-processor"
	ServiceVersion = "1.0.0"
)

// ContentStore is the read surface the facade fetches inputs through.
type ContentStore interface {
	GetTranscript(ctx context.Context, id, userID int64) (*models.Transcript, error)
	GetArticles(ctx context.Context, ids []int64, userID int64) ([]models.Article, error)
	Ping(ctx context.Context) error
}

// Analyzer produces one judgment per candidate.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string, candidates []analyzer.Candidate) ([]analyzer.Judgment, error)
}

// Applier executes an action plan transactionally.
type Applier interface {
	Apply(ctx context.Context, actions []resolver.Action, userID int64) (*engine.Result, error)
}

// Result is the outcome of one successful processing run.
type Result struct {
	CreatedCount       int
	UpdatedCount       int
	TotalProcessed     int
	CreatedArticles    []engine.CreatedSummary
	UpdatedArticles    []engine.UpdatedSummary
	AnalysisItemsCount int
}

// StatusReport describes service health for the status endpoint.
type StatusReport struct {
	Service             string   `json:"service"`
	Version             string   `json:"version"`
	RepositoryConnected bool     `json:"repository_connected"`
	ActiveModel         string   `json:"active_model"`
	ModelConfigValid    bool     `json:"model_config_valid"`
	ConfiguredModels    []string `json:"configured_models"`
}

type Service struct {
	store     ContentStore
	analyzer  Analyzer
	engine    Applier
	publisher eventbus.Publisher
}

func NewService(store ContentStore, an Analyzer, eng Applier, publisher eventbus.Publisher) *Service {
	if publisher == nil {
		publisher = eventbus.NopPublisher{}
	}
	return &Service{store: store, analyzer: an, engine: eng, publisher: publisher}
}

// Process runs the full pipeline for one transcript against its candidate
// articles. Any stage failure short-circuits the rest and returns the
// kind-tagged error unmodified.
func (s *Service) Process(ctx context.Context, transcriptID int64, articleIDs []int64, userID int64) (*Result, error) {
	transcript, err := s.store.GetTranscript(ctx, transcriptID, userID)
	if err != nil {
		return nil, err
	}
	articles, err := s.store.GetArticles(ctx, articleIDs, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]analyzer.Candidate, 0, len(articles))
	for _, a := range articles {
		candidates = append(candidates, analyzer.Candidate{ID: a.ID, Content: a.Content, Tags: a.Tags})
	}

	judgments, err := s.analyzer.Analyze(ctx, transcript.Text, candidates)
	if err != nil {
		return nil, err
	}

	text := analyzer.NormalizeTranscript(transcript.Text)
	actions := resolver.Resolve(text, judgments)

	applied, err := s.engine.Apply(ctx, actions, userID)
	if err != nil {
		return nil, err
	}

	s.publishOutcomes(ctx, transcriptID, userID, applied)

	logger.InfoWithFields("transcript processed", logger.Fields{
		"transcript_id": transcriptID,
		"user_id":       userID,
		"candidates":    len(candidates),
		"created":       applied.CreatedCount,
		"updated":       applied.UpdatedCount,
	})
	return &Result{
		CreatedCount:       applied.CreatedCount,
		UpdatedCount:       applied.UpdatedCount,
		TotalProcessed:     applied.TotalProcessed,
		CreatedArticles:    applied.CreatedArticles,
		UpdatedArticles:    applied.UpdatedArticles,
		AnalysisItemsCount: len(judgments),
	}, nil
}

// publishOutcomes emits outcome events after the transaction committed.
// Failures are logged, never surfaced.
func (s *Service) publishOutcomes(ctx context.Context, transcriptID, userID int64, applied *engine.Result) {
	for _, c := range applied.CreatedArticles {
		err := s.publisher.Publish(ctx, events.ArticleCreatedEvent{
			BaseEvent:     events.NewBase(events.ArticleCreated),
			ArticleID:     c.NewID,
			UserID:        userID,
			TranscriptID:  transcriptID,
			Title:         c.Title,
			ContentLength: c.ContentLength,
			Tags:          c.Tags,
			CitedIDs:      c.CitedIDs,
		})
		if err != nil {
			logger.WarnWithFields("failed to publish article.created", logger.Fields{
				"article_id": c.NewID, "error": err.Error(),
			})
		}
	}
	for _, u := range applied.UpdatedArticles {
		err := s.publisher.Publish(ctx, events.ArticleUpdatedEvent{
			BaseEvent:     events.NewBase(events.ArticleUpdated),
			ArticleID:     u.ID,
			UserID:        userID,
			TranscriptID:  transcriptID,
			Mode:          u.Mode,
			ContentLength: u.ContentLength,
			CitedIDs:      u.CitedIDs,
		})
		if err != nil {
			logger.WarnWithFields("failed to publish article.updated", logger.Fields{
				"article_id": u.ID, "error": err.Error(),
			})
		}
	}
}

// Status reports repository connectivity and model configuration health.
func (s *Service) Status(ctx context.Context) StatusReport {
	cfg := config.GetConfig()
	active := cfg.Processing.ActiveModel

	return StatusReport{
		Service:             ServiceName,
		Version:             ServiceVersion,
		RepositoryConnected: s.store.Ping(ctx) == nil,
		ActiveModel:         active,
		ModelConfigValid:    config.ValidateProfile(active) == nil,
		ConfiguredModels:    config.ListModels(),
	}
}

// UpdateModelConfig upserts a named model profile. All fields are required;
// the swap takes effect for subsequent calls only.
func (s *Service) UpdateModelConfig(name, url, apiKey, modelName string) error {
	if err := config.UpdateModelProfile(name, url, apiKey, modelName); err != nil {
		return err
	}
	logger.InfoWithFields("model profile updated", logger.Fields{"profile": name, "model": modelName})
	return nil
}
