package retrieval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/menukb/query"
)

// NotFoundText is the answer when no strategy can respond.
const NotFoundText = "Information not found for your query."

// Source records which strategy produced an Answer.
type Source int

const (
	SourceStructured Source = iota + 1
	SourceGenerated
	SourceSemantic
	SourceNotFound
)

func (s Source) String() string {
	switch s {
	case SourceStructured:
		return "structured"
	case SourceGenerated:
		return "generated"
	case SourceSemantic:
		return "semantic"
	case SourceNotFound:
		return "not_found"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Answer is the reply to one question.
type Answer struct {
	Text   string
	Intent query.Intent
	Source Source
}

var unhelpfulPhrases = []string{
	"don't know",
	"cannot answer",
	"outside the scope",
	"not available in the provided details",
	"not available",
}

// IsUnhelpful reports whether a generated answer should be discarded: it is
// blank, shorter than minLength characters, or admits it has no answer.
func IsUnhelpful(text string, minLength int) bool {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) < minLength {
		return true
	}
	lower := strings.ToLower(text)
	for _, phrase := range unhelpfulPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
