// Package resolver turns per-candidate judgments into a disjoint action
// plan. It performs no I/O; Resolve is a pure function of its inputs.
package resolver

import (
	"voxnote/analyzer"
)

// UpdateMode selects how new content is applied to an existing article.
type UpdateMode string

const (
	// ModeReplace swaps the article body for the new content.
	ModeReplace UpdateMode = "replace"
	// ModeAppend keeps the article body and appends the new content.
	ModeAppend UpdateMode = "append"
)

// Action is one planned mutation. Exactly one of Create/Update is set.
type Action struct {
	Create *CreateArticle
	Update *UpdateArticle
}

// CreateArticle plans a new article carrying the transcript content.
// Title and tags are derived at execution time.
type CreateArticle struct {
	Content string
}

// UpdateArticle plans a mutation of one existing candidate article.
type UpdateArticle struct {
	TargetID   int64
	Mode       UpdateMode
	Content    string
	Title      string
	Summary    string
	Confidence float64
	Reason     string
}

// Resolve derives the action plan for one transcript. Zero related judgments
// yield exactly one CreateArticle with the transcript text; otherwise one
// UpdateArticle per related candidate, in judgment order, and no create.
// Conflicting judgments for the same candidate collapse to one update:
// update beats merge, then higher confidence wins.
func Resolve(transcript string, judgments []analyzer.Judgment) []Action {
	best := make(map[int64]analyzer.Judgment)
	var order []int64
	for _, j := range judgments {
		if !j.Relation.Related() {
			continue
		}
		prev, seen := best[j.ArticleID]
		if !seen {
			best[j.ArticleID] = j
			order = append(order, j.ArticleID)
			continue
		}
		if wins(j, prev) {
			best[j.ArticleID] = j
		}
	}

	if len(order) == 0 {
		return []Action{{Create: &CreateArticle{Content: transcript}}}
	}

	actions := make([]Action, 0, len(order))
	for _, id := range order {
		j := best[id]
		content := j.Content
		if content == "" {
			content = transcript
		}
		mode := ModeReplace
		if j.Relation == analyzer.RelationMerge {
			mode = ModeAppend
		}
		actions = append(actions, Action{Update: &UpdateArticle{
			TargetID:   id,
			Mode:       mode,
			Content:    content,
			Title:      j.Title,
			Summary:    j.Summary,
			Confidence: j.Confidence,
			Reason:     j.Reason,
		}})
	}
	return actions
}

// wins reports whether a should replace b as the judgment for one candidate.
func wins(a, b analyzer.Judgment) bool {
	if a.Relation != b.Relation {
		return a.Relation == analyzer.RelationUpdate
	}
	return a.Confidence > b.Confidence
}
