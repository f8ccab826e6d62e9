package analyzer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxnote/apperr"
)

// fakeInvoker returns a canned JSON payload, or an error.
type fakeInvoker struct {
	payload string
	err     error
	calls   int
	prompts []string
}

func (f *fakeInvoker) Invoke(_ context.Context, _, prompt string, out any) error {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.payload), out)
}

func TestAnalyzeEmptyCandidatesSkipsModel(t *testing.T) {
	inv := &fakeInvoker{}
	judgments, err := New(inv).Analyze(context.Background(), "some transcript", nil)
	require.NoError(t, err)
	assert.Empty(t, judgments)
	assert.Zero(t, inv.calls, "empty candidate set must not call the model")
}

func TestAnalyzeReturnsJudgmentsInCandidateOrder(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"1","judgments":[
		{"article_id":67,"relation":"merge","confidence":0.7,"reason":"adds detail"},
		{"article_id":1,"relation":"unrelated","confidence":0.95,"reason":"different topic"},
		{"article_id":44,"relation":"update","confidence":0.8,"reason":"supersedes"}
	]}`}
	candidates := []Candidate{{ID: 1}, {ID: 44}, {ID: 67}}

	judgments, err := New(inv).Analyze(context.Background(), "transcript", candidates)
	require.NoError(t, err)
	require.Len(t, judgments, 3)
	assert.Equal(t, int64(1), judgments[0].ArticleID)
	assert.Equal(t, int64(44), judgments[1].ArticleID)
	assert.Equal(t, int64(67), judgments[2].ArticleID)
	assert.Equal(t, RelationUpdate, judgments[1].Relation)
}

func TestAnalyzePromptContainsCandidates(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"1","judgments":[
		{"article_id":5,"relation":"unrelated","confidence":1,"reason":"r"}
	]}`}
	candidates := []Candidate{{ID: 5, Content: "existing body", Tags: []string{"go", "notes"}}}

	_, err := New(inv).Analyze(context.Background(), "hello world", candidates)
	require.NoError(t, err)
	require.Len(t, inv.prompts, 1)
	assert.Contains(t, inv.prompts[0], "article_id: 5")
	assert.Contains(t, inv.prompts[0], "existing body")
	assert.Contains(t, inv.prompts[0], "go, notes")
	assert.Contains(t, inv.prompts[0], "hello world")
}

func TestAnalyzeRejectsIncompleteResponse(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"1","judgments":[
		{"article_id":1,"relation":"unrelated","confidence":1,"reason":"r"}
	]}`}
	candidates := []Candidate{{ID: 1}, {ID: 2}}

	_, err := New(inv).Analyze(context.Background(), "transcript", candidates)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidJSONResponse, apperr.KindOf(err))
}

func TestAnalyzeRejectsWrongVersion(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"2","judgments":[
		{"article_id":1,"relation":"unrelated","confidence":1,"reason":"r"}
	]}`}

	_, err := New(inv).Analyze(context.Background(), "transcript", []Candidate{{ID: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidJSONResponse, apperr.KindOf(err))
}

func TestAnalyzeRejectsUnknownRelation(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"1","judgments":[
		{"article_id":1,"relation":"maybe","confidence":1,"reason":"r"}
	]}`}

	_, err := New(inv).Analyze(context.Background(), "transcript", []Candidate{{ID: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidJSONResponse, apperr.KindOf(err))
}

func TestAnalyzeRejectsJudgmentForUnknownArticle(t *testing.T) {
	inv := &fakeInvoker{payload: `{"version":"1","judgments":[
		{"article_id":99,"relation":"unrelated","confidence":1,"reason":"r"}
	]}`}

	_, err := New(inv).Analyze(context.Background(), "transcript", []Candidate{{ID: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidJSONResponse, apperr.KindOf(err))
}

func TestAnalyzePropagatesGatewayError(t *testing.T) {
	inv := &fakeInvoker{err: apperr.New(apperr.GPTAPITimeout, "model call failed after 3 attempts")}

	_, err := New(inv).Analyze(context.Background(), "transcript", []Candidate{{ID: 1}})
	require.Error(t, err)
	assert.Equal(t, apperr.GPTAPITimeout, apperr.KindOf(err))
}

func TestNormalizeTranscript(t *testing.T) {
	in := "Hello   world [laughs]\r\n\r\n\r\n\r\nsecond  line (inaudible) with [[cite:12]] marker"
	got := NormalizeTranscript(in)
	assert.Equal(t, "Hello world\n\nsecond line with [[cite:12]] marker", got)
}

func TestExcerptCutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 400)
	got := Excerpt(long)
	assert.LessOrEqual(t, len([]rune(got)), excerptLimit+3)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), "wor"), "must not cut mid-word")
}
