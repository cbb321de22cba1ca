package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Faasos", "faasos"},
		{"folds hyphen", "The-Good-Bowl", "the good bowl"},
		{"folds underscore", "the_good_bowl", "the good bowl"},
		{"keeps punctuation", "McDonald's", "mcdonald's"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
			assert.Equal(t, Name(tt.in), Name(Name(tt.in)), "Name must be idempotent")
		})
	}

	assert.Equal(t, Name("The Good Bowl"), Name("the_good-bowl"))
}

func TestLoose(t *testing.T) {
	assert.Equal(t, "mcdonalds", Loose("McDonald's"))
	assert.Equal(t, "the good bowl", Loose("The  Good-Bowl!"))
	assert.Equal(t, Loose("Chai Point."), Loose("chai_point"))
	assert.Equal(t, "", Loose(""))
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips parens and newlines", "Served with Rice (Large)\nSpicy", "served with rice large spicy"},
		{"keeps currency and separators", "Add cheese ₹30, extra-large.", "add cheese ₹30, extra-large."},
		{"drops other symbols", "Hot & sour *soup*!", "hot sour soup"},
		{"collapses whitespace", "  a \t  b  ", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Clean(got), "Clean must be idempotent")
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"₹199 - ₹249", 199},
		{"", 0},
		{"Free", 0},
		{"Rs. 120.50", 120},
		{"250", 250},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.in))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Koramangala Block", Title("koramangala block"))
	assert.Equal(t, "Hsr", Title("HSR"))
}
