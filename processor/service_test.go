package processor

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxnote/analyzer"
	"voxnote/apperr"
	"voxnote/config"
	"voxnote/engine"
	"voxnote/models"
)

// memStore backs both the facade reads and the engine writes. Transactions
// are simulated all-or-nothing against a scratch copy.
type memStore struct {
	mu          sync.Mutex
	transcripts map[int64]models.Transcript
	articles    map[int64]models.Article
	nextID      int64

	scratch map[int64]models.Article
}

func newMemStore() *memStore {
	return &memStore{
		transcripts: map[int64]models.Transcript{},
		articles:    map[int64]models.Article{},
		nextID:      1000,
	}
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) GetTranscript(_ context.Context, id, userID int64) (*models.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transcripts[id]
	if !ok || t.UserID != userID {
		return nil, apperr.New(apperr.DBTranscriptNotFound, "transcript %d not found", id)
	}
	return &t, nil
}

func (m *memStore) GetArticles(_ context.Context, ids []int64, userID int64) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		a, ok := m.articles[id]
		if !ok || a.UserID != userID {
			return nil, apperr.New(apperr.DBArticleNotFound, "articles not found: [%d]", id)
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scratch = map[int64]models.Article{}
	for k, v := range m.articles {
		m.scratch[k] = v
	}
	if err := fn(ctx); err != nil {
		return err
	}
	m.articles = m.scratch
	return nil
}

func (m *memStore) GetArticle(_ context.Context, id, userID int64) (*models.Article, error) {
	a, ok := m.scratch[id]
	if !ok || a.UserID != userID {
		return nil, apperr.New(apperr.DBArticleNotFound, "article %d not found", id)
	}
	return &a, nil
}

func (m *memStore) CreateArticle(_ context.Context, userID int64, title, summary, content string, tagIDs []int64, tagNames []string) (int64, error) {
	m.nextID++
	m.scratch[m.nextID] = models.Article{
		ID: m.nextID, UserID: userID, Title: title, Summary: summary,
		Content: content, TagIDs: tagIDs, Tags: tagNames,
	}
	return m.nextID, nil
}

func (m *memStore) UpdateArticle(_ context.Context, id, userID int64, title, summary, content string) (int, error) {
	a, ok := m.scratch[id]
	if !ok || a.UserID != userID {
		return 0, apperr.New(apperr.DBArticleNotFound, "article %d not found", id)
	}
	a.Title, a.Summary, a.Content = title, summary, content
	m.scratch[id] = a
	return len([]rune(content)), nil
}

func (m *memStore) GetOrCreateTags(_ context.Context, _ int64, names []string) ([]int64, error) {
	ids := make([]int64, len(names))
	for i := range names {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (m *memStore) ReplaceCitations(context.Context, int64, []int64) error { return nil }

// scriptedAnalyzer returns canned judgments keyed by transcript text.
type scriptedAnalyzer struct {
	mu        sync.Mutex
	judgments map[string][]analyzer.Judgment
	calls     int
}

func (s *scriptedAnalyzer) Analyze(_ context.Context, transcript string, candidates []analyzer.Candidate) ([]analyzer.Judgment, error) {
	if len(candidates) == 0 {
		return []analyzer.Judgment{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.judgments[transcript], nil
}

func newTestService(store *memStore, an Analyzer) *Service {
	config.Set(config.AppConfig{Processing: config.ProcessingConfig{BatchWorkers: 2}})
	return NewService(store, an, engine.New(store), nil)
}

func TestProcessEmptyCandidatesCreatesWithoutModelCall(t *testing.T) {
	store := newMemStore()
	store.transcripts[17] = models.Transcript{ID: 17, UserID: 9, Text: "a note about gardening"}
	an := &scriptedAnalyzer{}
	svc := newTestService(store, an)

	result, err := svc.Process(context.Background(), 17, nil, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.Equal(t, 0, result.AnalysisItemsCount)
	assert.Zero(t, an.calls, "no candidates means no model call")
}

func TestProcessUpdatesRelatedCandidates(t *testing.T) {
	store := newMemStore()
	store.transcripts[15] = models.Transcript{ID: 15, UserID: 9, Text: "transcript body"}
	store.articles[1] = models.Article{ID: 1, UserID: 9, Content: "one"}
	store.articles[44] = models.Article{ID: 44, UserID: 9, Content: "forty-four"}
	store.articles[67] = models.Article{ID: 67, UserID: 9, Content: "sixty-seven"}

	an := &scriptedAnalyzer{judgments: map[string][]analyzer.Judgment{
		"transcript body": {
			{ArticleID: 1, Relation: analyzer.RelationUnrelated},
			{ArticleID: 44, Relation: analyzer.RelationUpdate, Content: "new 44"},
			{ArticleID: 67, Relation: analyzer.RelationUpdate, Content: "new 67"},
		},
	}}
	svc := newTestService(store, an)

	result, err := svc.Process(context.Background(), 15, []int64{1, 44, 67}, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 3, result.AnalysisItemsCount)
	assert.Equal(t, "new 44", store.articles[44].Content)
	assert.Equal(t, "new 67", store.articles[67].Content)
}

func TestProcessMissingTranscript(t *testing.T) {
	svc := newTestService(newMemStore(), &scriptedAnalyzer{})

	_, err := svc.Process(context.Background(), 999, nil, 9)
	require.Error(t, err)
	assert.Equal(t, apperr.DBTranscriptNotFound, apperr.KindOf(err))
}

func TestProcessMissingCandidateShortCircuits(t *testing.T) {
	store := newMemStore()
	store.transcripts[1] = models.Transcript{ID: 1, UserID: 9, Text: "text"}
	an := &scriptedAnalyzer{}
	svc := newTestService(store, an)

	_, err := svc.Process(context.Background(), 1, []int64{404}, 9)
	require.Error(t, err)
	assert.Equal(t, apperr.DBArticleNotFound, apperr.KindOf(err))
	assert.Zero(t, an.calls, "candidate fetch failure must skip analysis")
}

func TestProcessBatchIsolatesFailures(t *testing.T) {
	store := newMemStore()
	store.transcripts[1] = models.Transcript{ID: 1, UserID: 9, Text: "first note"}
	store.transcripts[3] = models.Transcript{ID: 3, UserID: 9, Text: "third note"}
	svc := newTestService(store, &scriptedAnalyzer{})

	batch := svc.ProcessBatch(context.Background(), []Pair{
		{TranscriptID: 1},
		{TranscriptID: 999},
		{TranscriptID: 3},
	}, 9)

	assert.Equal(t, 3, batch.Stats.TotalPairs)
	assert.Equal(t, 2, batch.Stats.SuccessfulPairs)
	assert.Equal(t, 1, batch.Stats.FailedPairs)
	assert.Equal(t, batch.Stats.TotalPairs, batch.Stats.SuccessfulPairs+batch.Stats.FailedPairs)
	assert.Equal(t, 2, batch.Stats.TotalCreated)

	require.Len(t, batch.Results, 3)
	assert.Equal(t, int64(1), batch.Results[0].TranscriptID)
	assert.NoError(t, batch.Results[0].Err)
	assert.Equal(t, int64(999), batch.Results[1].TranscriptID)
	assert.Equal(t, apperr.DBTranscriptNotFound, apperr.KindOf(batch.Results[1].Err))
	assert.Equal(t, int64(3), batch.Results[2].TranscriptID)
	assert.NoError(t, batch.Results[2].Err)
}

func TestProcessBatchKeepsInputOrder(t *testing.T) {
	store := newMemStore()
	pairs := make([]Pair, 6)
	for i := range pairs {
		id := int64(i + 1)
		store.transcripts[id] = models.Transcript{ID: id, UserID: 9, Text: "note"}
		pairs[i] = Pair{TranscriptID: id}
	}
	svc := newTestService(store, &scriptedAnalyzer{})

	batch := svc.ProcessBatch(context.Background(), pairs, 9)
	for i, r := range batch.Results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, int64(i+1), r.TranscriptID)
	}
}

func TestStatusReportsModelValidity(t *testing.T) {
	config.Set(config.AppConfig{
		Models: map[string]config.ModelProfile{
			"default": {URL: "http://localhost:1234", APIKey: "k", ModelName: "m"},
		},
		Processing: config.ProcessingConfig{ActiveModel: "default"},
	})
	svc := NewService(newMemStore(), &scriptedAnalyzer{}, nil, nil)

	status := svc.Status(context.Background())
	assert.Equal(t, ServiceName, status.Service)
	assert.True(t, status.RepositoryConnected)
	assert.True(t, status.ModelConfigValid)
	assert.Equal(t, []string{"default"}, status.ConfiguredModels)
}

func TestUpdateModelConfigRequiresAllFields(t *testing.T) {
	config.Set(config.AppConfig{})
	svc := NewService(newMemStore(), &scriptedAnalyzer{}, nil, nil)

	err := svc.UpdateModelConfig("default", "http://localhost", "", "gpt")
	require.Error(t, err)

	require.NoError(t, svc.UpdateModelConfig("default", "http://localhost", "key", "gpt"))
	assert.Contains(t, config.ListModels(), "default")
}
