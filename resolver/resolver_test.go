package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxnote/analyzer"
)

func TestResolveNoJudgmentsCreates(t *testing.T) {
	actions := Resolve("transcript text", nil)
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].Create)
	assert.Equal(t, "transcript text", actions[0].Create.Content)
}

func TestResolveAllUnrelatedCreates(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 1, Relation: analyzer.RelationUnrelated},
		{ArticleID: 2, Relation: analyzer.RelationUnrelated},
	}
	actions := Resolve("transcript text", judgments)
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].Create)
}

func TestResolveRelatedCandidatesUpdateWithoutCreate(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 1, Relation: analyzer.RelationUnrelated},
		{ArticleID: 44, Relation: analyzer.RelationUpdate, Content: "new body"},
		{ArticleID: 67, Relation: analyzer.RelationMerge, Content: "addition"},
	}
	actions := Resolve("transcript text", judgments)
	require.Len(t, actions, 2)

	require.NotNil(t, actions[0].Update)
	assert.Equal(t, int64(44), actions[0].Update.TargetID)
	assert.Equal(t, ModeReplace, actions[0].Update.Mode)
	assert.Equal(t, "new body", actions[0].Update.Content)

	require.NotNil(t, actions[1].Update)
	assert.Equal(t, int64(67), actions[1].Update.TargetID)
	assert.Equal(t, ModeAppend, actions[1].Update.Mode)

	for _, a := range actions {
		assert.Nil(t, a.Create, "related judgments must not also create")
	}
}

func TestResolveNoDuplicateTargets(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 7, Relation: analyzer.RelationMerge, Confidence: 0.6, Content: "a"},
		{ArticleID: 7, Relation: analyzer.RelationUpdate, Confidence: 0.4, Content: "b"},
		{ArticleID: 7, Relation: analyzer.RelationMerge, Confidence: 0.9, Content: "c"},
	}
	actions := Resolve("transcript text", judgments)
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].Update)
	// update beats merge regardless of confidence
	assert.Equal(t, ModeReplace, actions[0].Update.Mode)
	assert.Equal(t, "b", actions[0].Update.Content)
}

func TestResolveHigherConfidenceWinsWithinRelation(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 7, Relation: analyzer.RelationMerge, Confidence: 0.3, Content: "low"},
		{ArticleID: 7, Relation: analyzer.RelationMerge, Confidence: 0.8, Content: "high"},
	}
	actions := Resolve("t", judgments)
	require.Len(t, actions, 1)
	assert.Equal(t, "high", actions[0].Update.Content)
}

func TestResolveEmptyJudgmentContentFallsBackToTranscript(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 3, Relation: analyzer.RelationMerge},
	}
	actions := Resolve("the transcript", judgments)
	require.Len(t, actions, 1)
	assert.Equal(t, "the transcript", actions[0].Update.Content)
}

func TestResolveIsPure(t *testing.T) {
	judgments := []analyzer.Judgment{
		{ArticleID: 1, Relation: analyzer.RelationUnrelated},
		{ArticleID: 2, Relation: analyzer.RelationUpdate, Confidence: 0.9, Content: "x"},
		{ArticleID: 3, Relation: analyzer.RelationMerge, Confidence: 0.5, Content: "y"},
	}
	first := Resolve("t", judgments)
	second := Resolve("t", judgments)
	assert.Equal(t, first, second)
}
