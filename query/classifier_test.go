package query

import (
	"testing"

	"github.com/poiesic/menukb/normalize"
	"github.com/stretchr/testify/assert"
)

type fakeResolver map[string]bool

func (r fakeResolver) HasRestaurant(name string) bool {
	return r[normalize.Name(name)]
}

func knownRestaurants() fakeResolver {
	return fakeResolver{"faasos": true, "biryani blues": true, "the good bowl": true}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		resolver NameResolver
		want     Classification
	}{
		{
			name:     "price range with restaurant",
			question: "What's the price range for Faasos?",
			want:     Classification{Intent: IntentPriceRange, Restaurant: "Faasos"},
		},
		{
			name:     "price range demoted without restaurant",
			question: "What's the price range of a good meal?",
			want:     Classification{Intent: IntentGeneral},
		},
		{
			name:     "price range with location",
			question: "What is the price range for Biryani Blues in HSR Layout?",
			want:     Classification{Intent: IntentPriceRange, Restaurant: "Biryani Blues", Location: "HSR Layout"},
		},
		{
			name:     "price range of a section",
			question: "price range of desserts at Faasos",
			want:     Classification{Intent: IntentPriceRange, Restaurant: "Faasos", Section: "dessert"},
		},
		{
			name:     "lowercase name needs the resolver",
			question: "what's the price range for faasos?",
			want:     Classification{Intent: IntentGeneral},
		},
		{
			name:     "lowercase name known to the resolver",
			question: "what's the price range for faasos?",
			resolver: knownRestaurants(),
			want:     Classification{Intent: IntentPriceRange, Restaurant: "faasos"},
		},
		{
			name:     "gluten specific by capitalized phrase",
			question: "Does Faasos offer any gluten-free options?",
			want:     Classification{Intent: IntentGlutenFreeSpecific, Restaurant: "Faasos", LowConfidence: true},
		},
		{
			name:     "gluten specific confirmed by resolver",
			question: "Does Faasos offer any gluten-free options?",
			resolver: knownRestaurants(),
			want:     Classification{Intent: IntentGlutenFreeSpecific, Restaurant: "Faasos"},
		},
		{
			name:     "gluten section swap",
			question: "gluten-free Pizza Hut at Koramangala",
			want: Classification{
				Intent:        IntentGlutenFreeSpecific,
				Restaurant:    "Pizza Hut",
				Location:      "Koramangala",
				LowConfidence: true,
			},
		},
		{
			name:     "gluten general",
			question: "Are there any gluten-free dishes?",
			want:     Classification{Intent: IntentGlutenFreeGeneral},
		},
		{
			name:     "veg comparison",
			question: "Which restaurant has the most vegetarian options?",
			want:     Classification{Intent: IntentVegComparison, VegOnly: true},
		},
		{
			name:     "comparison of menus",
			question: "Compare the menus of Faasos and Biryani Blues",
			want:     Classification{Intent: IntentComparison, Restaurant: "Faasos", Other: "Biryani Blues"},
		},
		{
			name:     "comparison keyword",
			question: "Compare the spice levels mentioned in the menus of Faasos and Behrouz Biryani",
			want: Classification{
				Intent:     IntentComparison,
				Restaurant: "Faasos",
				Other:      "Behrouz Biryani",
				Keyword:    "spice",
			},
		},
		{
			name:     "versus",
			question: "Faasos vs Biryani Blues",
			want:     Classification{Intent: IntentComparison, Restaurant: "Faasos", Other: "Biryani Blues"},
		},
		{
			name:     "comparison without sides is demoted",
			question: "compare prices",
			want:     Classification{Intent: IntentGeneral},
		},
		{
			name:     "availability with section",
			question: "What appetizers does Faasos offer?",
			want:     Classification{Intent: IntentAvailability, Restaurant: "Faasos", Section: "appetizer"},
		},
		{
			name:     "menu query",
			question: "Show me the Faasos menu",
			want:     Classification{Intent: IntentAvailability, Restaurant: "Faasos"},
		},
		{
			name:     "menu query keeps a known article",
			question: "What's on the menu at The Good Bowl?",
			resolver: knownRestaurants(),
			want:     Classification{Intent: IntentAvailability, Restaurant: "The Good Bowl"},
		},
		{
			name:     "location is not a restaurant",
			question: "Suggest some vegetarian dishes in Koramangala",
			resolver: knownRestaurants(),
			want:     Classification{Intent: IntentGeneral, Location: "Koramangala", VegOnly: true},
		},
		{
			name:     "general with area",
			question: "Best biryani in Koramangala area",
			want:     Classification{Intent: IntentGeneral, Location: "Koramangala"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []ClassifierOption
			if tt.resolver != nil {
				opts = append(opts, WithResolver(tt.resolver))
			}
			got := NewClassifier(opts...).Classify(tt.question)
			tt.want.Question = tt.question
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_NonVeg(t *testing.T) {
	got := NewClassifier().Classify("Which restaurant has the most non-veg items?")
	assert.NotEqual(t, IntentVegComparison, got.Intent)
	assert.True(t, got.NonVeg)
	assert.False(t, got.VegOnly)
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(WithResolver(knownRestaurants()))
	q := "Compare the menus of Faasos and Biryani Blues"
	first := c.Classify(q)
	for range 10 {
		assert.Equal(t, first, c.Classify(q))
	}
}

func TestClassification_Targeted(t *testing.T) {
	assert.True(t, Classification{Restaurant: "Faasos"}.Targeted())
	assert.False(t, Classification{}.Targeted())
}
