package dto

import (
	"voxnote/apperr"
	"voxnote/engine"
	"voxnote/processor"
)

// ProcessRequest is the single-item processing input.
// swagger:model ProcessRequest
type ProcessRequest struct {
	TranscriptID int64   `json:"transcript_id" binding:"required"`
	ArticleIDs   []int64 `json:"article_ids"`
	UserID       int64   `json:"user_id" binding:"required"`
}

// BatchPair is one transcript/candidate-set pair in a batch request.
type BatchPair struct {
	TranscriptID int64   `json:"transcript_id" binding:"required"`
	ArticleIDs   []int64 `json:"article_ids"`
}

// BatchRequest is the batch processing input.
// swagger:model BatchRequest
type BatchRequest struct {
	Pairs  []BatchPair `json:"pairs" binding:"required,min=1"`
	UserID int64       `json:"user_id" binding:"required"`
}

// UpdateModelRequest upserts one named model profile.
// swagger:model UpdateModelRequest
type UpdateModelRequest struct {
	URL       string `json:"url" binding:"required"`
	APIKey    string `json:"api_key" binding:"required"`
	ModelName string `json:"model_name" binding:"required"`
}

// ProcessData is the success payload of a processing run.
type ProcessData struct {
	CreatedCount       int                     `json:"created_count"`
	UpdatedCount       int                     `json:"updated_count"`
	TotalProcessed     int                     `json:"total_processed"`
	CreatedArticles    []engine.CreatedSummary `json:"created_articles"`
	UpdatedArticles    []engine.UpdatedSummary `json:"updated_articles"`
	AnalysisItemsCount int                     `json:"analysis_items_count"`
}

// ProcessResponse is the single-item envelope: success with data, or
// failure with message and error_code.
// swagger:model ProcessResponse
type ProcessResponse struct {
	Success   bool         `json:"success"`
	Data      *ProcessData `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	ErrorCode string       `json:"error_code,omitempty"`
}

// PairResultDTO is one slot of a batch response, in input order.
type PairResultDTO struct {
	Index        int             `json:"index"`
	TranscriptID int64           `json:"transcript_id"`
	ArticleIDs   []int64         `json:"article_ids"`
	Result       ProcessResponse `json:"result"`
}

// BatchResponse is the batch envelope.
// swagger:model BatchResponse
type BatchResponse struct {
	Success           bool                   `json:"success"`
	OverallStats      processor.OverallStats `json:"overall_stats"`
	IndividualResults []PairResultDTO        `json:"individual_results"`
}

// NewProcessResponse builds the envelope for one processing outcome.
func NewProcessResponse(result *processor.Result, err error) ProcessResponse {
	if err != nil {
		return ProcessResponse{
			Success:   false,
			Message:   apperr.MessageOf(err),
			ErrorCode: string(apperr.KindOf(err)),
		}
	}
	return ProcessResponse{
		Success: true,
		Data: &ProcessData{
			CreatedCount:       result.CreatedCount,
			UpdatedCount:       result.UpdatedCount,
			TotalProcessed:     result.TotalProcessed,
			CreatedArticles:    result.CreatedArticles,
			UpdatedArticles:    result.UpdatedArticles,
			AnalysisItemsCount: result.AnalysisItemsCount,
		},
	}
}

// NewBatchResponse builds the batch envelope from per-pair outcomes.
func NewBatchResponse(batch *processor.BatchResult) BatchResponse {
	results := make([]PairResultDTO, 0, len(batch.Results))
	for _, r := range batch.Results {
		results = append(results, PairResultDTO{
			Index:        r.Index,
			TranscriptID: r.TranscriptID,
			ArticleIDs:   r.ArticleIDs,
			Result:       NewProcessResponse(r.Result, r.Err),
		})
	}
	return BatchResponse{
		Success:           true,
		OverallStats:      batch.Stats,
		IndividualResults: results,
	}
}
