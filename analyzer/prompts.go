package analyzer

import (
	"fmt"
	"strings"
)

const systemMessage = `You are a note-keeping assistant that decides how a voice transcript relates to a user's existing articles.

For every candidate article you must output exactly one judgment:
- "unrelated": the transcript has nothing to do with this article.
- "update": the transcript revises or supersedes this article; produce the full replacement content.
- "merge": the transcript adds to this article; produce only the addition to append.

Rules:
- Judge every candidate exactly once, using its article_id.
- When producing content for update/merge, keep any [[cite:N]] markers from the transcript and add [[cite:N]] wherever the content draws on candidate article N.
- Provide title and summary for update/merge judgments; leave them empty for unrelated ones.
- confidence is a number between 0 and 1.
- Respond with JSON only, no prose, no markdown fences, matching exactly:

{"version":"1","judgments":[{"article_id":1,"relation":"unrelated","confidence":0.9,"reason":"...","title":"","summary":"","content":""}]}`

func buildAnalysisPrompt(transcript string, candidates []Candidate) string {
	var b strings.Builder

	b.WriteString("## Transcript\n\n")
	b.WriteString(transcript)
	b.WriteString("\n\n## Candidate articles\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\n### article_id: %d\n", c.ID)
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "tags: %s\n", strings.Join(c.Tags, ", "))
		}
		b.WriteString(Excerpt(c.Content))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nJudge the transcript against all %d candidate articles.", len(candidates))

	return b.String()
}
