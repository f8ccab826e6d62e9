package analyzer

import (
	"regexp"
	"strings"
)

var (
	// annotationPattern strips transcription annotations like [laughs] or
	// (inaudible) injected by speech-to-text.
	annotationPattern = regexp.MustCompile(`\[[^\[\]]*\]|\([^()]*\)`)
	citePattern       = regexp.MustCompile(`\[\[cite:(\d+)\]\]`)
	citeHolderPattern = regexp.MustCompile("\x00cite:(\\d+)\x00")
	spacePattern      = regexp.MustCompile(`[ \t]+`)
	blankLinePattern  = regexp.MustCompile(`\n{3,}`)
)

// NormalizeTranscript cleans raw speech-to-text output: removes bracketed
// annotations, collapses runs of spaces, and limits consecutive blank lines.
// Double-bracket citation markers are protected from the annotation strip.
func NormalizeTranscript(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	text = citePattern.ReplaceAllString(text, "\x00cite:$1\x00")
	text = annotationPattern.ReplaceAllString(text, "")
	text = citeHolderPattern.ReplaceAllString(text, "[[cite:$1]]")

	text = spacePattern.ReplaceAllString(text, " ")
	text = blankLinePattern.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// excerptLimit bounds how much of each candidate's content goes into the
// prompt, keeping the request inside the token budget.
const excerptLimit = 1000

// Excerpt returns at most excerptLimit runes of content, cut at a word
// boundary where possible.
func Excerpt(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= excerptLimit {
		return string(runes)
	}
	cut := string(runes[:excerptLimit])
	if i := strings.LastIndexAny(cut, " \n"); i > excerptLimit/2 {
		cut = cut[:i]
	}
	return cut + "..."
}
