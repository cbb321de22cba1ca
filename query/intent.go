package query

import "fmt"

// Intent is the classified purpose of a question.
type Intent int

const (
	IntentVegComparison Intent = iota + 1
	IntentPriceRange
	IntentGlutenFreeSpecific
	IntentGlutenFreeGeneral
	IntentAvailability
	IntentComparison
	IntentGeneral
)

var intentNames = map[Intent]string{
	IntentVegComparison:      "veg_comparison",
	IntentPriceRange:         "price_range",
	IntentGlutenFreeSpecific: "gluten_free_specific",
	IntentGlutenFreeGeneral:  "gluten_free_general",
	IntentAvailability:       "availability",
	IntentComparison:         "comparison",
	IntentGeneral:            "general",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// ParseIntent converts a snake_case intent name back to an Intent.
func ParseIntent(s string) (Intent, error) {
	for intent, name := range intentNames {
		if name == s {
			return intent, nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

// Structured reports whether the intent is answered from the knowledge base
// without a generator.
func (i Intent) Structured() bool {
	switch i {
	case IntentVegComparison, IntentPriceRange, IntentGlutenFreeSpecific, IntentGlutenFreeGeneral:
		return true
	}
	return false
}
