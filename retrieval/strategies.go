package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/kb"
	"github.com/poiesic/menukb/normalize"
	"github.com/poiesic/menukb/query"
)

const (
	vegCountsShown      = 5
	glutenItemsShown    = 7
	glutenRestaurants   = 4
	glutenPerRestaurant = 2
	fallbackResults     = 3
	priceSearchResults  = 10
)

// Strategy is one way of answering a classified question. Answer reports
// false when the strategy declines and the next one should be tried.
type Strategy interface {
	Name() string
	Answer(ctx context.Context, cls query.Classification) (Answer, bool)
}

// structuredLookup answers from the knowledge base alone.
type structuredLookup struct {
	o *Orchestrator
}

func (s *structuredLookup) Name() string { return "structured" }

func (s *structuredLookup) Answer(ctx context.Context, cls query.Classification) (Answer, bool) {
	var (
		text string
		ok   bool
	)
	switch cls.Intent {
	case query.IntentVegComparison:
		text, ok = s.vegComparison(), true
	case query.IntentGlutenFreeSpecific:
		text, ok = s.glutenSpecific(ctx, cls), true
	case query.IntentGlutenFreeGeneral:
		text, ok = s.glutenGeneral(), true
	case query.IntentPriceRange:
		text, ok = s.priceRange(ctx, cls)
	case query.IntentAvailability:
		text, ok = s.sectionListing(ctx, cls)
	case query.IntentComparison:
		return s.o.compare(ctx, cls), true
	}
	if !ok {
		return Answer{}, false
	}
	return Answer{Text: text, Source: SourceStructured}, true
}

func (s *structuredLookup) vegComparison() string {
	counts := s.o.kb.VegCounts()
	if len(counts) == 0 {
		return "No vegetarian options found."
	}
	var sb strings.Builder
	sb.WriteString("Based on item counts:\n")
	for _, c := range counts[:min(len(counts), vegCountsShown)] {
		fmt.Fprintf(&sb, "• %s: %d veg items\n", c.Restaurant, c.Count)
	}
	fmt.Fprintf(&sb, "\n'%s' has the most listed veg items.", counts[0].Restaurant)
	return sb.String()
}

func (s *structuredLookup) glutenSpecific(ctx context.Context, cls query.Classification) string {
	name := cls.Restaurant
	if found := s.o.ladder(ctx, cls.Restaurant, "", cls, false); found.Name != "" {
		name = found.Name
	}
	in := ""
	if cls.Section != "" {
		in = "in " + cls.Section + " "
	}

	items := s.o.kb.GlutenFreeItems(name, cls.Section)
	if len(items) == 0 {
		return fmt.Sprintf("No specific gluten-free options found %sat '%s' based on descriptions. (Check common ingredients).", in, name)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Potentially gluten-free options %sat '%s':\n", in, name)
	for _, item := range items[:min(len(items), glutenItemsShown)] {
		fmt.Fprintf(&sb, "• %s (₹%.0f)\n", item.Name, item.Price)
	}
	if len(items) > glutenItemsShown {
		fmt.Fprintf(&sb, "... and %d more.", len(items)-glutenItemsShown)
	}
	sb.WriteString("\n" + kb.GlutenDisclaimer)
	return sb.String()
}

func (s *structuredLookup) glutenGeneral() string {
	items := s.o.kb.GlutenFreeItems("", "")
	if len(items) == 0 {
		return "No specific gluten-free options found across restaurants based on descriptions."
	}

	var order []string
	byRestaurant := make(map[string][]core.MenuItem)
	for _, item := range items {
		list, seen := byRestaurant[item.RestaurantName]
		if !seen {
			order = append(order, item.RestaurantName)
		}
		if len(list) < glutenPerRestaurant {
			byRestaurant[item.RestaurantName] = append(list, item)
		}
	}

	var sb strings.Builder
	sb.WriteString("Some potentially gluten-free options:\n")
	for _, name := range order[:min(len(order), glutenRestaurants)] {
		fmt.Fprintf(&sb, "\n%s:", name)
		for _, item := range byRestaurant[name] {
			fmt.Fprintf(&sb, "\n• %s (₹%.0f)", item.Name, item.Price)
		}
	}
	if len(order) > glutenRestaurants {
		sb.WriteString("\n... and potentially more.")
	}
	sb.WriteString("\n" + kb.GlutenDisclaimer)
	return sb.String()
}

// priceRange answers from the restaurant's prices. An unknown restaurant
// is retried as a dish name, first by substring and then semantically.
func (s *structuredLookup) priceRange(ctx context.Context, cls query.Classification) (string, bool) {
	name := cls.Restaurant
	if found := s.o.ladder(ctx, cls.Restaurant, cls.Location, cls, false); found.Name != "" {
		name = found.Name
	}
	pr := s.o.kb.PriceRange(name, cls.Location)
	if pr.Status != kb.PriceNotFound {
		return pr.String(), true
	}
	if cls.LowConfidence {
		return "", false
	}

	target := cls.Restaurant
	titled := normalize.Title(target)
	if lo, hi, ok := kb.PriceBounds(s.o.kb.ItemsMatchingName(target)); ok {
		if lo == hi {
			return fmt.Sprintf("'%s' items seem to be priced at ₹%.0f.", titled, lo), true
		}
		return fmt.Sprintf("Price range for '%s' items is ₹%.0f - ₹%.0f.", titled, lo, hi), true
	}
	if lo, hi, ok := kb.PriceBounds(s.o.kb.Search(ctx, target, priceSearchResults, "")); ok {
		if lo == hi {
			return fmt.Sprintf("'%s' items (by semantic search) seem to be priced at ₹%.0f.", titled, lo), true
		}
		return fmt.Sprintf("Price range for '%s' items (by semantic search) is ₹%.0f - ₹%.0f.", titled, lo, hi), true
	}
	return fmt.Sprintf("Sorry, I couldn't find price information for '%s'.", target), true
}

// sectionListing lists one section of a named restaurant. Other
// availability questions are left to the generator.
func (s *structuredLookup) sectionListing(ctx context.Context, cls query.Classification) (string, bool) {
	if cls.Section == "" || !cls.Targeted() {
		return "", false
	}
	found := s.o.ladder(ctx, cls.Restaurant, cls.Location, cls, false)
	if found.Name == "" {
		return "", false
	}

	var (
		heading string
		lines   []string
	)
	for _, item := range found.Items {
		if !containsFold(item.Section, cls.Section) {
			continue
		}
		if heading == "" {
			heading = item.Section
		}
		lines = append(lines, fmt.Sprintf("- %s (₹%.0f)", item.Name, item.Price))
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No %s items found for %s.", cls.Section, found.Name), true
	}
	return fmt.Sprintf("%s at %s:\n%s", heading, found.Name, strings.Join(lines, "\n")), true
}

// generationFallback hands retrieved documents to the generator.
type generationFallback struct {
	o *Orchestrator
}

func (g *generationFallback) Name() string { return "generation" }

func (g *generationFallback) Answer(ctx context.Context, cls query.Classification) (Answer, bool) {
	if g.o.generator == nil {
		return Answer{}, false
	}
	docs := g.o.Retrieve(ctx, cls)
	text, err := g.o.generator.Generate(ctx, docs, cls.Question)
	if err != nil {
		g.o.logger.Error("error generating answer", "intent", cls.Intent.String(), "err", err)
		return Answer{}, false
	}
	if IsUnhelpful(text, g.o.minAnswerLength) {
		g.o.logger.Debug("discarding unhelpful answer", "chars", len(text))
		return Answer{}, false
	}
	return Answer{Text: strings.TrimSpace(text), Source: SourceGenerated}, true
}

// semanticFallback lists the nearest menu items.
type semanticFallback struct {
	o *Orchestrator
}

func (f *semanticFallback) Name() string { return "semantic" }

func (f *semanticFallback) Answer(ctx context.Context, cls query.Classification) (Answer, bool) {
	items := f.o.kb.Search(ctx, cls.Question, fallbackResults, "")
	if len(items) == 0 {
		return Answer{}, false
	}
	var sb strings.Builder
	sb.WriteString("Based on keywords, found related items:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "• At %s: %s (₹%.0f)\n", item.RestaurantName, item.Name, item.Price)
	}
	return Answer{Text: sb.String(), Source: SourceSemantic}, true
}

// compare answers a comparison question. Each side is looked up without
// the semantic step, which would always find something.
func (o *Orchestrator) compare(ctx context.Context, cls query.Classification) Answer {
	first := o.ladder(ctx, cls.Restaurant, cls.Location, cls, false)
	second := o.ladder(ctx, cls.Other, cls.Location, cls, false)

	switch {
	case first.Name == "" && second.Name == "":
		return structured(fmt.Sprintf("Sorry, I couldn't find data for either '%s' or '%s'.", cls.Restaurant, cls.Other))
	case first.Name == "":
		return structured(fmt.Sprintf("Sorry, I couldn't find data for '%s'.", cls.Restaurant))
	case second.Name == "":
		return structured(fmt.Sprintf("Sorry, I couldn't find data for '%s'.", cls.Other))
	}

	a := Menu{Name: first.Name, Items: first.Items}
	b := Menu{Name: second.Name, Items: second.Items}
	if o.generator != nil {
		docs := Documents(Dedupe(
			ShapeBySection(a.Items, o.menuCap, o.perSection),
			ShapeBySection(b.Items, o.menuCap, o.perSection),
		))
		text, err := o.generator.Generate(ctx, docs, ComparisonPrompt(a, b, cls.Keyword))
		switch {
		case err != nil:
			o.logger.Error("error generating comparison", "a", a.Name, "b", b.Name, "err", err)
		case !IsUnhelpful(text, o.minAnswerLength):
			return Answer{Text: strings.TrimSpace(text), Source: SourceGenerated}
		}
	}
	return structured(Compare(a, b).String())
}

func structured(text string) Answer {
	return Answer{Text: text, Source: SourceStructured}
}
