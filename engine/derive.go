package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	titleLimit    = 30
	summaryLimit  = 50
	maxTags       = 5
	minKeywordLen = 3
)

var (
	headingPattern  = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	citationPattern = regexp.MustCompile(`\[\[cite:(\d+)\]\]`)
	markupPattern   = regexp.MustCompile("[#*`_>\\[\\]]")
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// DeriveTitle returns the first markdown heading of content, or a cleaned
// prefix capped at titleLimit runes.
func DeriveTitle(content string) string {
	if m := headingPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return prefix(clean(content), titleLimit)
}

// DeriveSummary returns a cleaned prefix of content capped at summaryLimit
// runes.
func DeriveSummary(content string) string {
	return prefix(clean(content), summaryLimit)
}

// DeriveTags extracts up to maxTags keywords from content by frequency,
// most frequent first, ties broken alphabetically.
func DeriveTags(content string) []string {
	freq := map[string]int{}
	for _, w := range wordPattern.FindAllString(strings.ToLower(clean(content)), -1) {
		if len([]rune(w)) < minKeywordLen || stopwords[w] {
			continue
		}
		freq[w]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxTags {
		words = words[:maxTags]
	}
	return words
}

// ExtractCitations returns the distinct article ids cited via [[cite:N]]
// markers in content, in first-occurrence order, excluding selfID.
func ExtractCitations(content string, selfID int64) []int64 {
	var ids []int64
	seen := map[int64]bool{}
	for _, m := range citationPattern.FindAllStringSubmatch(content, -1) {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || id == selfID || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// clean strips citation markers and light markdown noise, collapsing
// whitespace into single spaces.
func clean(content string) string {
	content = citationPattern.ReplaceAllString(content, "")
	content = markupPattern.ReplaceAllString(content, "")
	return strings.Join(strings.Fields(content), " ")
}

func prefix(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}

// stopwords excluded from keyword extraction. English plus the filler words
// speech-to-text produces most often.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "was": true, "are": true, "but": true, "not": true,
	"you": true, "have": true, "had": true, "has": true, "will": true,
	"can": true, "just": true, "like": true, "about": true, "from": true,
	"they": true, "them": true, "then": true, "than": true, "what": true,
	"when": true, "where": true, "which": true, "there": true, "here": true,
	"some": true, "also": true, "into": true, "over": true, "only": true,
	"very": true, "really": true, "going": true, "gonna": true, "yeah": true,
	"okay": true, "well": true, "umm": true, "actually": true, "basically": true,
}
