package query

import (
	"regexp"
	"strings"
)

// Extraction is what a Matcher found in a question. Fields a matcher does
// not produce are left empty.
type Extraction struct {
	Target   string
	Section  string
	Location string
	Other    string
	Keyword  string
	// Swapped is set when the capitalization heuristic exchanged the section
	// and target candidates. Such extractions are low confidence.
	Swapped bool
	Matcher string
}

// Matcher extracts entities from a question.
type Matcher interface {
	Name() string
	Match(question string) (Extraction, bool)
}

// FirstMatch runs matchers in order and returns the first match.
func FirstMatch(question string, matchers []Matcher) (Extraction, bool) {
	for _, m := range matchers {
		if ext, ok := m.Match(question); ok {
			return ext, true
		}
	}
	return Extraction{}, false
}

type regexMatcher struct {
	name    string
	re      *regexp.Regexp
	extract func(groups []string) (Extraction, bool)
}

func (m *regexMatcher) Name() string { return m.name }

func (m *regexMatcher) Match(question string) (Extraction, bool) {
	groups := m.re.FindStringSubmatch(trimQuestion(question))
	if groups == nil {
		return Extraction{}, false
	}
	ext, ok := m.extract(groups)
	if !ok {
		return Extraction{}, false
	}
	ext.Matcher = m.name
	return ext, true
}

type funcMatcher struct {
	name string
	fn   func(question string) (Extraction, bool)
}

func (m *funcMatcher) Name() string { return m.name }

func (m *funcMatcher) Match(question string) (Extraction, bool) {
	ext, ok := m.fn(trimQuestion(question))
	if ok {
		ext.Matcher = m.name
	}
	return ext, ok
}

func target(s string) (Extraction, bool) {
	s = cleanName(s)
	if s == "" {
		return Extraction{}, false
	}
	return Extraction{Target: s}, true
}

// TargetMatchers extract the restaurant (and optional section) of price and
// gluten questions.
func TargetMatchers() []Matcher {
	return []Matcher{
		&regexMatcher{
			name: "section_at",
			re:   regexp.MustCompile(`(?i)\b(?:price\s+range|gluten[\s-]*free(?:\s+options?|\s+items?|\s+dishes)?)\s+(?:of\s+|for\s+|in\s+)?(?:the\s+)?(.+?)\s+(?:at|from)\s+(.+)$`),
			extract: func(g []string) (Extraction, bool) {
				section, rest := strings.TrimSpace(g[1]), cleanName(g[2])
				if rest == "" {
					return Extraction{}, false
				}
				if s, ok := sectionIn(tokenize(section)); ok {
					return Extraction{Target: rest, Section: s}, true
				}
				// A multi-word title-cased "section" is more likely the
				// restaurant.
				fields := strings.Fields(section)
				if len(fields) > 1 {
					for _, f := range fields {
						if isCapitalized(f) {
							ext := Extraction{Target: cleanName(section), Swapped: true}
							if s, ok := sectionIn(tokenize(rest)); ok {
								ext.Section = s
							} else {
								ext.Location = rest
							}
							return ext, true
						}
					}
				}
				return Extraction{}, false
			},
		},
		&regexMatcher{
			name: "for_target",
			re:   regexp.MustCompile(`(?i)\b(?:price\s+range|prices?|gluten[\s-]*free(?:\s+options?|\s+items?|\s+dishes|\s+food)?)\s+(?:for|at|in|of)\s+(.+)$`),
			extract: func(g []string) (Extraction, bool) {
				return splitTargetSection(g[1])
			},
		},
		&funcMatcher{name: "capitalized_phrase", fn: capitalizedPhrase},
	}
}

// splitTargetSection splits "X", "X's desserts" or "X desserts [menu]".
func splitTargetSection(s string) (Extraction, bool) {
	s = cleanName(s)
	if i := strings.Index(s, "'s "); i > 0 {
		ext, ok := target(s[:i])
		if ok {
			if sec, found := sectionIn(tokenize(s[i+3:])); found {
				ext.Section = sec
			} else {
				ext.Section = strings.ToLower(strings.TrimSpace(s[i+3:]))
			}
		}
		return ext, ok
	}
	fields := strings.Fields(s)
	if len(fields) > 1 {
		if sec, ok := sectionWords[strings.ToLower(fields[len(fields)-1])]; ok {
			ext, found := target(strings.Join(fields[:len(fields)-1], " "))
			ext.Section = sec
			return ext, found
		}
	}
	return target(s)
}

var capitalizedRun = regexp.MustCompile(`[A-Z][\w'&.-]*(?:\s+(?:&\s+)?[A-Z][\w'&.-]*)*`)

// capitalizedPhrase picks the longest run of capitalized words, ignoring a
// capitalized question word at the start.
func capitalizedPhrase(q string) (Extraction, bool) {
	best := ""
	for _, loc := range capitalizedRun.FindAllStringIndex(q, -1) {
		phrase := q[loc[0]:loc[1]]
		if loc[0] == 0 {
			fields := strings.Fields(phrase)
			for len(fields) > 0 && questionStarters[strings.ToLower(strings.TrimSuffix(fields[0], "'s"))] {
				fields = fields[1:]
			}
			phrase = strings.Join(fields, " ")
		}
		if len(phrase) > len(best) {
			best = phrase
		}
	}
	ext, ok := target(best)
	if !ok {
		return ext, false
	}
	rest := strings.ToLower(q[strings.Index(q, best)+len(best):])
	if words := tokenize(rest); len(words) > 0 {
		if sec, found := sectionWords[words[0]]; found {
			ext.Section = sec
		}
	}
	return ext, true
}

// MenuMatchers extract the restaurant of menu and availability questions.
func MenuMatchers() []Matcher {
	return []Matcher{
		&regexMatcher{
			name: "does_x_offer",
			re:   regexp.MustCompile(`(?i)\bdoes\s+(.+?)\s+(?:offer|have|serve|sell)\b`),
			extract: func(g []string) (Extraction, bool) {
				return target(stripArticleKeepName(g[1]))
			},
		},
		&regexMatcher{
			name: "dishes_in_x",
			re:   regexp.MustCompile(`(?i)\b(?:dishes|items|food|options)\s+(?:in|at|from|of)\s+(.+?)(?:\s+(?:menu|restaurant))?$`),
			extract: func(g []string) (Extraction, bool) {
				return target(g[1])
			},
		},
		&regexMatcher{
			name: "menu_of_x",
			re:   regexp.MustCompile(`(?i)\bmenu\s+(?:of|at|for|from)\s+(.+)$`),
			extract: func(g []string) (Extraction, bool) {
				return target(g[1])
			},
		},
		&regexMatcher{
			name: "x_menu",
			re:   regexp.MustCompile(`(?i)^(.+?)(?:'s)?\s+(?:menu|dishes|restaurant|food)\b`),
			extract: func(g []string) (Extraction, bool) {
				return target(trimFiller(g[1]))
			},
		},
		&regexMatcher{
			name: "about_x",
			re:   regexp.MustCompile(`(?i)\babout\s+(.+?)(?:\s+(?:menu|restaurant|food))?$`),
			extract: func(g []string) (Extraction, bool) {
				return target(g[1])
			},
		},
	}
}

// stripArticleKeepName strips a leading article only when it is lowercase,
// so "The Good Bowl" survives.
func stripArticleKeepName(s string) string {
	s = strings.TrimSpace(s)
	if isCapitalized(s) {
		return s
	}
	return stripArticle(s)
}

const locationTail = `(?:\s+(?:menu|restaurants?|area|locality|region|zone)\b.*)?$`

// LocationMatchers extract a location fragment. The last "in/at/near" in
// the question wins.
func LocationMatchers() []Matcher {
	loc := func(g []string) (Extraction, bool) {
		l := cleanName(g[1])
		if l == "" {
			return Extraction{}, false
		}
		return Extraction{Location: l}, true
	}
	return []Matcher{
		&regexMatcher{
			name:    "in_x_area",
			re:      regexp.MustCompile(`(?i)^.*\b(?:in|at|near)\s+(?:the\s+)?([\w\s&'-]+?)\s+(?:area|locality|region|zone)\b`),
			extract: loc,
		},
		&regexMatcher{
			name:    "in_the_x",
			re:      regexp.MustCompile(`(?i)^.*\b(?:in|at|near)\s+the\s+([\w\s&'-]+?)` + locationTail),
			extract: loc,
		},
		&regexMatcher{
			name:    "in_x",
			re:      regexp.MustCompile(`(?i)^.*\b(?:in|at|near)\s+([\w\s&'-]+?)` + locationTail),
			extract: loc,
		},
	}
}

const comparisonTail = `(?:\s+(?:for|on|in|based|regarding|about|with|in terms of)\b.*)?$`

// ComparisonMatchers extract the two sides of a comparison.
func ComparisonMatchers() []Matcher {
	pair := func(g []string) (Extraction, bool) {
		a := cleanName(stripArticleKeepName(trimFiller(g[1])))
		b := cleanName(stripArticleKeepName(g[2]))
		if a == "" || b == "" {
			return Extraction{}, false
		}
		return Extraction{Target: a, Other: b}, true
	}
	return []Matcher{
		&regexMatcher{
			name:    "menus_of_x_and_y",
			re:      regexp.MustCompile(`(?i)\bmenus?\s+of\s+(.+?)\s+and\s+(.+?)` + comparisonTail),
			extract: pair,
		},
		&regexMatcher{
			name:    "compare_x_and_y",
			re:      regexp.MustCompile(`(?i)\bcompare\s+(?:between\s+)?(.+?)\s+(?:and|with|to|vs\.?|versus)\s+(.+?)` + comparisonTail),
			extract: pair,
		},
		&regexMatcher{
			name:    "x_vs_y",
			re:      regexp.MustCompile(`(?i)([\w&'.-]+(?:\s+[\w&'.-]+){0,3})\s+(?:vs\.?|versus)\s+(.+?)` + comparisonTail),
			extract: pair,
		},
	}
}

var (
	mentionedPhrase = regexp.MustCompile(`(?i)\bcompare\s+the\s+([\w\s]+?)\s+mentioned`)
	dishesPhrase    = regexp.MustCompile(`(?i)\b([a-z0-9-]+)\s+(?:dishes|mentioned)`)
)

// KeywordMatcher extracts the aspect a comparison is about, such as "spice"
// in "compare the spice levels mentioned in ...".
func KeywordMatcher() Matcher {
	return &funcMatcher{name: "keyword", fn: func(q string) (Extraction, bool) {
		if m := mentionedPhrase.FindStringSubmatch(q); m != nil {
			words := strings.Fields(strings.ToLower(m[1]))
			for len(words) > 1 {
				last := words[len(words)-1]
				if last != "levels" && last != "options" && last != "dishes" && last != "the" && last != "a" && last != "an" {
					break
				}
				words = words[:len(words)-1]
			}
			if len(words) > 0 {
				return Extraction{Keyword: words[len(words)-1]}, true
			}
		}
		if strings.Contains(strings.ToLower(q), "spice") {
			return Extraction{Keyword: "spice"}, true
		}
		if m := dishesPhrase.FindStringSubmatch(q); m != nil {
			if w := strings.ToLower(m[1]); !fillerWords[w] && !genericDeterminers[w] {
				return Extraction{Keyword: w}, true
			}
		}
		return Extraction{}, false
	}}
}
