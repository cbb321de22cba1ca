package ai

import (
	"fmt"
	"strings"
)

// ContextDocument is one menu item handed to a Generator.
type ContextDocument struct {
	Restaurant  string
	Location    string
	Item        string
	Section     string
	Price       float64
	Dietary     string
	Description string
}

// Content renders the document as the block of text placed in the prompt.
// Missing fields render as N/A.
func (d ContextDocument) Content() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Restaurant: %s\n", orNA(d.Restaurant))
	fmt.Fprintf(&b, "Location: %s\n", orNA(d.Location))
	fmt.Fprintf(&b, "Item: %s\n", orNA(d.Item))
	fmt.Fprintf(&b, "Section: %s\n", orNA(d.Section))
	fmt.Fprintf(&b, "Price: ₹%.0f\n", d.Price)
	fmt.Fprintf(&b, "Dietary: %s\n", orNA(d.Dietary))
	fmt.Fprintf(&b, "Description: %s", orNA(d.Description))
	return b.String()
}

// JoinContent renders docs separated by blank lines.
func JoinContent(docs []ContextDocument) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = d.Content()
	}
	return strings.Join(parts, "\n\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
