package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextDocument_Content(t *testing.T) {
	doc := ContextDocument{
		Restaurant:  "Faasos",
		Location:    "Koramangala",
		Item:        "Paneer Wrap",
		Section:     "Wraps",
		Price:       179,
		Dietary:     "veg",
		Description: "paneer, onion",
	}

	want := "Restaurant: Faasos\n" +
		"Location: Koramangala\n" +
		"Item: Paneer Wrap\n" +
		"Section: Wraps\n" +
		"Price: ₹179\n" +
		"Dietary: veg\n" +
		"Description: paneer, onion"
	assert.Equal(t, want, doc.Content())
}

func TestContextDocument_ContentMissingFields(t *testing.T) {
	got := ContextDocument{Item: "Dosa"}.Content()
	assert.Contains(t, got, "Restaurant: N/A\n")
	assert.Contains(t, got, "Price: ₹0\n")
	assert.Contains(t, got, "Description: N/A")
}

func TestJoinContent(t *testing.T) {
	docs := []ContextDocument{{Item: "A"}, {Item: "B"}}
	got := JoinContent(docs)
	assert.Contains(t, got, "Item: A")
	assert.Contains(t, got, "\n\nRestaurant: N/A\n")
	assert.Equal(t, "", JoinContent(nil))
}
