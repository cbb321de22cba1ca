package openai

import (
	"testing"

	"github.com/poiesic/menukb/ai"
	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt(t *testing.T) {
	docs := []ai.ContextDocument{{Restaurant: "Faasos", Item: "Paneer Wrap", Price: 179}}
	got := buildUserPrompt(docs, "  What wraps does Faasos have?\n")

	assert.Contains(t, got, "Restaurant Context:\n```\nRestaurant: Faasos\n")
	assert.Contains(t, got, "Price: ₹179")
	assert.True(t, len(got) > 0 && got[len(got)-1] == '?')
	assert.Contains(t, got, "Question:\nWhat wraps does Faasos have?")
}

func TestBuildUserPrompt_NoDocuments(t *testing.T) {
	got := buildUserPrompt(nil, "hi")
	assert.Equal(t, "Restaurant Context:\n```\n\n```\n\nQuestion:\nhi", got)
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Faasos serves wraps.  ", "Faasos serves wraps."},
		{"fenced", "```\nFaasos serves wraps.\n```", "Faasos serves wraps."},
		{"fenced with language", "```markdown\n- Paneer Wrap\n```", "- Paneer Wrap"},
		{"empty", "   ", ""},
		{"lone fence", "```", "```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAnswer(tt.in))
		})
	}
}

func TestToken(t *testing.T) {
	assert.Equal(t, "none", token(ai.NewConfig()))
	assert.Equal(t, "k", token(ai.NewConfig(ai.WithAPIKey("k"))))
}
