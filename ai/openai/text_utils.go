package openai

import "strings"

// cleanAnswer strips surrounding whitespace and markdown code fences some
// models wrap short answers in.
func cleanAnswer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "text")
		s = strings.TrimPrefix(s, "markdown")
	}
	return strings.TrimSpace(s)
}
