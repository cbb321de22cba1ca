package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnhelpful(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"blank", "   ", true},
		{"too short", "Yes.", true},
		{"admits ignorance", "I don't know which restaurant serves that dish.", true},
		{"cannot answer", "I cannot answer questions about delivery times.", true},
		{"out of scope", "That is outside the scope of the menus I have.", true},
		{"not in details", "That item is not available in the provided details.", true},
		{"not available", "Sorry, pricing is Not Available for this outlet.", true},
		{"helpful", "Faasos offers Paneer Wrap for ₹100 and Veg Roll for ₹250.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnhelpful(tt.text, 20))
		})
	}
}

func TestIsUnhelpful_MinLengthCountsRunes(t *testing.T) {
	assert.False(t, IsUnhelpful("₹₹₹₹₹", 5))
	assert.True(t, IsUnhelpful("₹₹₹₹", 5))
	assert.False(t, IsUnhelpful("ok", 0))
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "structured", SourceStructured.String())
	assert.Equal(t, "generated", SourceGenerated.String())
	assert.Equal(t, "semantic", SourceSemantic.String())
	assert.Equal(t, "not_found", SourceNotFound.String())
	assert.Equal(t, "Source(0)", Source(0).String())
	assert.Equal(t, "Step(9)", Step(9).String())
	assert.Equal(t, "substring", StepSubstring.String())
}
