// Package analyzer classifies the relationship between one transcript and a
// set of candidate articles with a single model call.
package analyzer

import (
	"context"

	"voxnote/apperr"
	"voxnote/logger"
)

// Relation classifies how a transcript relates to one candidate article.
type Relation string

const (
	RelationUnrelated Relation = "unrelated"
	RelationUpdate    Relation = "update"
	RelationMerge     Relation = "merge"
)

func (r Relation) valid() bool {
	return r == RelationUnrelated || r == RelationUpdate || r == RelationMerge
}

// Related reports whether the judgment calls for modifying the candidate.
func (r Relation) Related() bool {
	return r == RelationUpdate || r == RelationMerge
}

// Candidate is the compact article representation handed to the model.
type Candidate struct {
	ID      int64
	Content string
	Tags    []string
}

// Judgment is the model's verdict for one candidate.
type Judgment struct {
	ArticleID  int64    `json:"article_id"`
	Relation   Relation `json:"relation"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
}

// responseSchemaVersion pins the judgment payload shape; anything else from
// the model is rejected as INVALID_JSON_RESPONSE.
const responseSchemaVersion = "1"

type analysisResponse struct {
	Version   string     `json:"version"`
	Judgments []Judgment `json:"judgments"`
}

// Invoker is the model gateway surface the analyzer needs.
type Invoker interface {
	Invoke(ctx context.Context, systemMsg, prompt string, out any) error
}

type Analyzer struct {
	gateway Invoker
}

func New(gateway Invoker) *Analyzer {
	return &Analyzer{gateway: gateway}
}

// Analyze returns one judgment per candidate, in candidate order. An empty
// candidate set returns an empty slice without calling the model. Gateway
// failures propagate unchanged; a response missing or duplicating candidates
// is INVALID_JSON_RESPONSE.
func (a *Analyzer) Analyze(ctx context.Context, transcript string, candidates []Candidate) ([]Judgment, error) {
	if len(candidates) == 0 {
		return []Judgment{}, nil
	}

	transcript = NormalizeTranscript(transcript)
	prompt := buildAnalysisPrompt(transcript, candidates)

	var resp analysisResponse
	if err := a.gateway.Invoke(ctx, systemMessage, prompt, &resp); err != nil {
		return nil, err
	}
	judgments, err := validate(resp, candidates)
	if err != nil {
		return nil, err
	}

	logger.DebugWithFields("analysis complete", logger.Fields{
		"candidates": len(candidates),
		"judgments":  len(judgments),
	})
	return judgments, nil
}

// validate checks the versioned payload and reorders judgments into
// candidate input order.
func validate(resp analysisResponse, candidates []Candidate) ([]Judgment, error) {
	if resp.Version != responseSchemaVersion {
		return nil, apperr.New(apperr.InvalidJSONResponse,
			"unsupported response schema version %q", resp.Version)
	}
	if len(resp.Judgments) != len(candidates) {
		return nil, apperr.New(apperr.InvalidJSONResponse,
			"expected %d judgments, got %d", len(candidates), len(resp.Judgments))
	}

	byID := make(map[int64]Judgment, len(resp.Judgments))
	for _, j := range resp.Judgments {
		if !j.Relation.valid() {
			return nil, apperr.New(apperr.InvalidJSONResponse,
				"unknown relation %q for article %d", j.Relation, j.ArticleID)
		}
		if j.Confidence < 0 || j.Confidence > 1 {
			return nil, apperr.New(apperr.InvalidJSONResponse,
				"confidence %v out of range for article %d", j.Confidence, j.ArticleID)
		}
		if _, dup := byID[j.ArticleID]; dup {
			return nil, apperr.New(apperr.InvalidJSONResponse,
				"duplicate judgment for article %d", j.ArticleID)
		}
		byID[j.ArticleID] = j
	}

	ordered := make([]Judgment, 0, len(candidates))
	for _, c := range candidates {
		j, ok := byID[c.ID]
		if !ok {
			return nil, apperr.New(apperr.InvalidJSONResponse,
				"missing judgment for article %d", c.ID)
		}
		ordered = append(ordered, j)
	}
	return ordered, nil
}
