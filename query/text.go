package query

import (
	"strings"
	"unicode"
)

// Words stripped from the front of a menu-query candidate.
var fillerWords = map[string]bool{
	"what": true, "whats": true, "which": true, "is": true, "are": true, "on": true,
	"the": true, "a": true, "an": true, "show": true, "me": true, "list": true,
	"give": true, "tell": true, "about": true, "see": true, "can": true, "could": true,
	"i": true, "please": true, "get": true, "in": true, "at": true, "from": true,
	"of": true, "for": true, "all": true, "some": true, "any": true, "their": true,
	"do": true, "does": true, "you": true, "have": true, "there": true,
}

// Leading words that make a candidate generic rather than a name.
var genericDeterminers = map[string]bool{
	"a": true, "an": true, "any": true, "some": true, "good": true, "best": true,
	"great": true, "nice": true, "cheap": true, "decent": true, "my": true,
	"your": true, "this": true, "that": true, "these": true, "those": true,
	"every": true, "each": true, "all": true, "most": true,
}

// Sentence starters that are capitalized without being names.
var questionStarters = map[string]bool{
	"what": true, "which": true, "who": true, "is": true, "are": true, "does": true,
	"do": true, "show": true, "list": true, "tell": true, "give": true, "how": true,
	"where": true, "can": true, "could": true, "i": true, "please": true,
	"compare": true, "any": true, "find": true, "the": true, "get": true,
}

// sectionWords maps menu section words to their singular form.
var sectionWords = map[string]string{
	"appetizer": "appetizer", "appetizers": "appetizer",
	"starter": "starter", "starters": "starter",
	"dessert": "dessert", "desserts": "dessert",
	"main": "main", "mains": "main",
	"drink": "drink", "drinks": "drink",
	"beverage": "beverage", "beverages": "beverage",
	"soup": "soup", "soups": "soup",
	"salad": "salad", "salads": "salad",
	"snack": "snack", "snacks": "snack",
	"side": "side", "sides": "side",
}

// tokenize splits text into lowercased words with surrounding punctuation
// and possessive suffixes removed.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.ToLower(strings.Trim(f, ".,!?;:\"()[]{}"))
		w = strings.TrimSuffix(w, "'s")
		w = strings.Trim(w, "'")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func hasAny(set map[string]bool, words ...string) bool {
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}

// sectionIn returns the first section word in words.
func sectionIn(words []string) (string, bool) {
	for _, w := range words {
		if s, ok := sectionWords[w]; ok {
			return s, true
		}
	}
	return "", false
}

// trimQuestion removes surrounding whitespace and trailing sentence
// punctuation.
func trimQuestion(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "?.! ")
}

// trimFiller drops leading filler words.
func trimFiller(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 0 && fillerWords[strings.ToLower(strings.Trim(fields[0], "'"))] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// stripArticle drops a leading "the", "a" or "an".
func stripArticle(s string) string {
	fields := strings.Fields(s)
	if len(fields) > 1 {
		switch strings.ToLower(fields[0]) {
		case "the", "a", "an":
			fields = fields[1:]
		}
	}
	return strings.Join(fields, " ")
}

// cleanName trims punctuation, possessives and trailing menu words from an
// extracted name.
func cleanName(s string) string {
	s = strings.Trim(strings.TrimSpace(s), ".,!?;:\"")
	lower := strings.ToLower(s)
	for _, suffix := range []string{" menus", " menu", " restaurant", " outlet"} {
		if strings.HasSuffix(lower, suffix) {
			s = s[:len(s)-len(suffix)]
			lower = lower[:len(lower)-len(suffix)]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "'s")
	return strings.TrimSpace(s)
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
