package normalize

import (
	"regexp"
	"strings"
)

var (
	fenceRe     = regexp.MustCompile("(?i)```(?:json)?")
	controlRe   = regexp.MustCompile(`[\r\n\t]+`)
	reasoningRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// Sanitize removes markdown code-fence markers, collapses runs of newline,
// carriage-return and tab characters into a single space and trims the result.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(raw string) string {
	s := raw
	// Removing one marker can join backticks into a new one, so repeat until stable.
	for {
		stripped := fenceRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = controlRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripReasoning drops <think>...</think> blocks that reasoning models emit
// ahead of their answer.
func StripReasoning(raw string) string {
	return reasoningRe.ReplaceAllString(raw, "")
}
