package scanning

import "strings"

// cleanResponse strips the decoration vision models like to wrap around a
// transcription: markdown code fences, Windows line endings, and leading or
// trailing blank space. The result is what the analysis core consumes, so
// line boundaries must survive untouched.
func cleanResponse(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	// Remove opening markdown code blocks
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}
