package kb

import (
	"strings"

	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/normalize"
)

// GlutenDisclaimer must accompany any answer built from GlutenFreeItems.
const GlutenDisclaimer = "(Note: Verify with restaurant for strict needs.)"

var defaultGlutenKeywords = []string{
	"bread", "wheat", "maida", "atta", "flour", "pasta", "noodle", "naan",
	"roti", "paratha", "kulcha", "bhatura", "chapati", "puri", "bun",
	"burger", "pizza", "sandwich", "wrap", "roll", "momo", "samosa",
	"semolina", "rava", "suji", "barley", "beer", "cake", "cookie",
	"biscuit", "crumb", "batter", "tortilla", "soy sauce",
}

// DefaultGlutenKeywords returns the built-in denylist of gluten-bearing
// ingredient words.
func DefaultGlutenKeywords() []string {
	return append([]string(nil), defaultGlutenKeywords...)
}

// GlutenFreeItems returns items that are potentially gluten-free: neither
// their name nor their cleaned description mentions a denylisted keyword.
// This is a text heuristic, not a dietary guarantee; answers built from it
// carry GlutenDisclaimer. Empty restaurant or section disables that filter.
func (kb *KnowledgeBase) GlutenFreeItems(restaurant, section string) []core.MenuItem {
	norm := normalize.Name(restaurant)
	return kb.filterItems(func(m *core.MenuItem) bool {
		if restaurant != "" && m.NormalizedRestaurantName != norm {
			return false
		}
		if !containsFold(m.Section, section) {
			return false
		}
		return !kb.mentionsGluten(m)
	})
}

func (kb *KnowledgeBase) mentionsGluten(m *core.MenuItem) bool {
	text := strings.ToLower(m.Name) + " " + normalize.Clean(m.Description)
	for _, kw := range kb.glutenKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
