package processor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"voxnote/config"
	"voxnote/logger"
)

// Pair is one batch input: a transcript and its candidate article ids.
type Pair struct {
	TranscriptID int64
	ArticleIDs   []int64
}

// PairResult is the outcome slot for one pair. Exactly one of Result/Err is
// set.
type PairResult struct {
	Index        int
	TranscriptID int64
	ArticleIDs   []int64
	Result       *Result
	Err          error
}

// OverallStats aggregates a batch run.
type OverallStats struct {
	TotalPairs      int `json:"total_pairs"`
	SuccessfulPairs int `json:"successful_pairs"`
	FailedPairs     int `json:"failed_pairs"`
	TotalCreated    int `json:"total_created"`
	TotalUpdated    int `json:"total_updated"`
}

// BatchResult holds per-pair outcomes in input order plus aggregates.
type BatchResult struct {
	Stats   OverallStats
	Results []PairResult
}

// ProcessBatch runs every pair through the single-item pipeline with a
// bounded worker pool. A pair's failure lands in its own slot and never
// aborts the remaining pairs; results keep input order.
func (s *Service) ProcessBatch(ctx context.Context, pairs []Pair, userID int64) *BatchResult {
	results := make([]PairResult, len(pairs))

	workers := config.GetConfig().Processing.BatchWorkers
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pair := range pairs {
		g.Go(func() error {
			res, err := s.Process(groupCtx, pair.TranscriptID, pair.ArticleIDs, userID)
			results[i] = PairResult{
				Index:        i,
				TranscriptID: pair.TranscriptID,
				ArticleIDs:   pair.ArticleIDs,
				Result:       res,
				Err:          err,
			}
			// pair failures are isolated; never cancel the group
			return nil
		})
	}
	g.Wait()

	stats := OverallStats{TotalPairs: len(pairs)}
	for _, r := range results {
		if r.Err != nil {
			stats.FailedPairs++
			continue
		}
		stats.SuccessfulPairs++
		stats.TotalCreated += r.Result.CreatedCount
		stats.TotalUpdated += r.Result.UpdatedCount
	}

	logger.InfoWithFields("batch processed", logger.Fields{
		"user_id":    userID,
		"total":      stats.TotalPairs,
		"successful": stats.SuccessfulPairs,
		"failed":     stats.FailedPairs,
	})
	return &BatchResult{Stats: stats, Results: results}
}
