// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package query

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/menukb/normalize"
)

// NameResolver reports whether a restaurant name is known.
// *kb.KnowledgeBase satisfies it.
type NameResolver interface {
	HasRestaurant(name string) bool
}

// Classification is the result of classifying one question.
type Classification struct {
	Question string
	Intent   Intent

	// Restaurant is the target of targeted intents and the first side of a
	// comparison. Other is the second side.
	Restaurant string
	Other      string
	Section    string
	Location   string
	Keyword    string

	VegOnly bool
	NonVeg  bool

	// LowConfidence marks extractions that relied on the capitalization
	// heuristics. Callers should fall back to general handling when a
	// lookup based on them fails.
	LowConfidence bool
}

// Targeted reports whether the classification names a restaurant.
func (c Classification) Targeted() bool {
	return c.Restaurant != ""
}

// Classifier maps questions to intents. It is stateless and safe for
// concurrent use.
type Classifier struct {
	resolver   NameResolver
	target     []Matcher
	menu       []Matcher
	locations  []Matcher
	comparison []Matcher
	keyword    Matcher
	logger     *slog.Logger
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithResolver lets the classifier accept known restaurant names regardless
// of capitalization and reject location fragments that are restaurant names.
func WithResolver(r NameResolver) ClassifierOption {
	return func(c *Classifier) {
		c.resolver = r
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "classifier")
	}
}

// NewClassifier creates a Classifier with the default matcher lists.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		target:     TargetMatchers(),
		menu:       MenuMatchers(),
		locations:  LocationMatchers(),
		comparison: ComparisonMatchers(),
		keyword:    KeywordMatcher(),
		logger:     slog.Default().With("component", "classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	nonVegPattern = regexp.MustCompile(`(?i)\bnon[\s-]?veg`)
	vegPattern    = regexp.MustCompile(`(?i)\bvegetarian\b|\bveg\s+(?:options?|food|dish|dishes|items?)\b`)
	menuPattern   = regexp.MustCompile(`(?i)\bmenu\b|\bdish|what do they (?:serve|offer)`)
)

// Classify assigns an intent to question and extracts its entities.
func (c *Classifier) Classify(question string) Classification {
	q := strings.TrimSpace(question)
	words := tokenize(q)
	set := wordSet(words)

	cls := Classification{Question: q, Intent: IntentGeneral}
	cls.NonVeg = nonVegPattern.MatchString(q)
	cls.VegOnly = !cls.NonVeg && vegPattern.MatchString(q)

	defer func() {
		c.logger.Debug("question classified",
			"intent", cls.Intent.String(),
			"restaurant", cls.Restaurant,
			"other", cls.Other,
			"section", cls.Section,
			"location", cls.Location,
			"low_confidence", cls.LowConfidence)
	}()

	if set["compare"] || hasAny(set, "vs", "vs.", "versus") {
		if ext, ok := FirstMatch(q, c.comparison); ok {
			cls.Intent = IntentComparison
			cls.Restaurant = ext.Target
			cls.Other = ext.Other
			if kw, found := c.keyword.Match(q); found {
				cls.Keyword = kw.Keyword
			}
			return cls
		}
	}

	if hasAny(set, "vegetarian", "veg") && hasAny(set, "best", "most") && !cls.NonVeg {
		cls.Intent = IntentVegComparison
		return cls
	}

	lower := strings.ToLower(q)
	if strings.Contains(lower, "price") && strings.Contains(lower, "range") {
		if c.resolveTarget(&cls) {
			cls.Intent = IntentPriceRange
			return cls
		}
	}

	if strings.Contains(lower, "gluten") {
		if c.resolveTarget(&cls) {
			cls.Intent = IntentGlutenFreeSpecific
		} else {
			cls.Intent = IntentGlutenFreeGeneral
		}
		return cls
	}

	asks := hasAny(set, "what", "does", "do", "show", "list", "tell", "which")
	offers := hasAny(set, "offer", "offers", "have", "has", "serve", "serves", "menu", "sell", "sells")
	section, hasSection := sectionIn(words)
	nouns := hasSection || hasAny(set, "dishes", "dish", "items", "item", "menu", "food", "options")
	restaurant, found := c.menuTarget(q)
	if (asks && offers && nouns) || (found && menuPattern.MatchString(q)) {
		cls.Intent = IntentAvailability
		if found {
			cls.Restaurant = restaurant
		}
		cls.Section = section
		cls.Location = c.locate(q, cls.Restaurant)
		return cls
	}

	cls.Location = c.locate(q, "")
	return cls
}

// resolveTarget runs the target matchers and fills Restaurant, Section,
// Location and LowConfidence when the target is resolvable.
func (c *Classifier) resolveTarget(cls *Classification) bool {
	ext, ok := FirstMatch(cls.Question, c.target)
	if !ok {
		return false
	}
	loc := c.locate(cls.Question, ext.Target)
	name := c.cleanTarget(stripLocation(ext.Target, loc))
	if !c.resolvable(name) {
		return false
	}
	cls.Restaurant = name
	cls.Section = ext.Section
	cls.Location = loc
	cls.LowConfidence = ext.Swapped || (ext.Matcher == "capitalized_phrase" && !c.known(name))
	return true
}

func (c *Classifier) menuTarget(q string) (string, bool) {
	ext, ok := FirstMatch(q, c.menu)
	if !ok {
		return "", false
	}
	name := c.cleanTarget(stripLocation(ext.Target, c.locate(q, ext.Target)))
	if !c.resolvable(name) || c.isUnknownLocation(q, name) {
		return "", false
	}
	return name, true
}

// isUnknownLocation reports whether name is the question's location
// fragment and the resolver does not know it as a restaurant, as in
// "dishes in Koramangala".
func (c *Classifier) isUnknownLocation(q, name string) bool {
	if c.resolver == nil || c.known(name) {
		return false
	}
	ext, ok := FirstMatch(q, c.locations)
	return ok && normalize.Name(ext.Location) == normalize.Name(name)
}

// locate returns the first location fragment that is neither the target
// nor a known restaurant.
func (c *Classifier) locate(q, target string) string {
	for _, m := range c.locations {
		ext, ok := m.Match(q)
		if !ok {
			continue
		}
		if target != "" && partOfTarget(target, ext.Location) {
			continue
		}
		if c.known(ext.Location) {
			continue
		}
		return ext.Location
	}
	return ""
}

// resolvable reports whether name can serve as a restaurant target: the
// resolver knows it, or it has a capitalized word and does not start with
// a generic determiner.
func (c *Classifier) resolvable(name string) bool {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return false
	}
	if c.known(name) {
		return true
	}
	if genericDeterminers[strings.ToLower(fields[0])] {
		return false
	}
	for _, f := range fields {
		if isCapitalized(f) {
			return true
		}
	}
	return false
}

func (c *Classifier) known(name string) bool {
	return c.resolver != nil && name != "" && c.resolver.HasRestaurant(name)
}

// cleanTarget strips a leading article unless the resolver knows the name
// with it.
func (c *Classifier) cleanTarget(name string) string {
	if c.known(name) {
		return name
	}
	return stripArticle(name)
}

// partOfTarget reports whether loc is target itself or its trailing words,
// as "Good Bowl" is for "The Good Bowl". A location introduced by a
// preposition inside target does not count.
func partOfTarget(target, loc string) bool {
	t, l := normalize.Name(target), normalize.Name(loc)
	if t == l {
		return true
	}
	head, found := strings.CutSuffix(t, " "+l)
	if !found {
		return false
	}
	for _, prep := range []string{" in", " at", " near", " in the", " at the", " near the"} {
		if strings.HasSuffix(head, prep) {
			return false
		}
	}
	return true
}

// stripLocation removes a trailing "in/at/near <location>" from target.
func stripLocation(target, location string) string {
	if location == "" {
		return target
	}
	lower := strings.ToLower(target)
	suffix := strings.ToLower(location)
	for _, prep := range []string{" in the ", " at the ", " near the ", " in ", " at ", " near "} {
		if strings.HasSuffix(lower, prep+suffix) {
			return strings.TrimSpace(target[:len(target)-len(prep+suffix)])
		}
	}
	for _, tail := range []string{" area", " locality", " region", " zone"} {
		for _, prep := range []string{" in ", " at ", " near "} {
			if strings.HasSuffix(lower, prep+suffix+tail) {
				return strings.TrimSpace(target[:len(target)-len(prep+suffix+tail)])
			}
		}
	}
	return target
}
