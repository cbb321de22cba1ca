package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetMatchers(t *testing.T) {
	tests := []struct {
		question string
		want     Extraction
	}{
		{"What's the price range for Faasos?", Extraction{Target: "Faasos", Matcher: "for_target"}},
		{"price range for Faasos's desserts", Extraction{Target: "Faasos", Section: "dessert", Matcher: "for_target"}},
		{"price range for Biryani Blues starters menu", Extraction{Target: "Biryani Blues", Section: "starter", Matcher: "for_target"}},
		{"gluten free options at Faasos", Extraction{Target: "Faasos", Matcher: "for_target"}},
		{"price range of desserts at Faasos", Extraction{Target: "Faasos", Section: "dessert", Matcher: "section_at"}},
		{"gluten-free Pizza Hut at desserts", Extraction{Target: "Pizza Hut", Section: "dessert", Swapped: true, Matcher: "section_at"}},
		{"Is Mainland China good for gluten", Extraction{Target: "Mainland China", Matcher: "capitalized_phrase"}},
		{"Does Faasos have gluten-free wraps", Extraction{Target: "Faasos", Matcher: "capitalized_phrase"}},
		{"Do you know Truffles desserts", Extraction{Target: "Truffles", Section: "dessert", Matcher: "capitalized_phrase"}},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := FirstMatch(tt.question, TargetMatchers())
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := FirstMatch("anything gluten free?", TargetMatchers())
	assert.False(t, ok)
}

func TestMenuMatchers(t *testing.T) {
	tests := []struct {
		question string
		target   string
		matcher  string
	}{
		{"Does Faasos offer appetizers?", "Faasos", "does_x_offer"},
		{"does the corner cafe serve tea", "corner cafe", "does_x_offer"},
		{"What dishes in Biryani Blues are spicy", "Biryani Blues are spicy", "dishes_in_x"},
		{"Show the menu of Chai Point", "Chai Point", "menu_of_x"},
		{"Show me the Faasos menu", "Faasos", "x_menu"},
		{"Tell me about Chai Point", "Chai Point", "about_x"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := FirstMatch(tt.question, MenuMatchers())
			require.True(t, ok)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.matcher, got.Matcher)
		})
	}

	_, ok := FirstMatch("Show me the menu", MenuMatchers())
	assert.False(t, ok, "nothing but filler before the menu word")
}

func TestLocationMatchers(t *testing.T) {
	tests := []struct {
		question string
		location string
		matcher  string
	}{
		{"veg food in Koramangala area", "Koramangala", "in_x_area"},
		{"veg food in the HSR Layout", "HSR Layout", "in_the_x"},
		{"restaurants in Indiranagar?", "Indiranagar", "in_x"},
		{"dishes in Faasos available near BTM", "BTM", "in_x"},
		{"best rolls near Jayanagar restaurants", "Jayanagar", "in_x"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := FirstMatch(tt.question, LocationMatchers())
			require.True(t, ok)
			assert.Equal(t, tt.location, got.Location)
			assert.Equal(t, tt.matcher, got.Matcher)
		})
	}

	_, ok := FirstMatch("what's cheap", LocationMatchers())
	assert.False(t, ok)
}

func TestComparisonMatchers(t *testing.T) {
	tests := []struct {
		question string
		target   string
		other    string
		matcher  string
	}{
		{"Compare the menus of Faasos and Biryani Blues", "Faasos", "Biryani Blues", "menus_of_x_and_y"},
		{"compare between Faasos and Behrouz on price", "Faasos", "Behrouz", "compare_x_and_y"},
		{"Compare Faasos's menu with The Good Bowl", "Faasos", "The Good Bowl", "compare_x_and_y"},
		{"Which is better, Faasos vs Behrouz?", "Faasos", "Behrouz", "x_vs_y"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := FirstMatch(tt.question, ComparisonMatchers())
			require.True(t, ok)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.other, got.Other)
			assert.Equal(t, tt.matcher, got.Matcher)
		})
	}
}

func TestKeywordMatcher(t *testing.T) {
	tests := []struct {
		question string
		keyword  string
		ok       bool
	}{
		{"Compare the spice levels mentioned in the menus of A and B", "spice", true},
		{"Compare the dessert options mentioned for A and B", "dessert", true},
		{"which menu has more spice, A or B", "spice", true},
		{"compare the biryani dishes of A and B", "biryani", true},
		{"compare A and B", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, ok := KeywordMatcher().Match(tt.question)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.keyword, got.Keyword)
		})
	}
}
