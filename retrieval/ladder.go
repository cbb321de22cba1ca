package retrieval

import (
	"context"
	"strings"

	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/normalize"
	"github.com/poiesic/menukb/query"
)

// lookup is the outcome of resolving a restaurant name.
type lookup struct {
	Items []core.MenuItem
	Step  Step
	// Name is the catalog spelling of the matched restaurant. It is empty
	// when only the semantic step found items.
	Name string
}

// ladder resolves name to menu items trying exact, loose and substring
// matches in turn, then semantic search when semantic is set. It stops at
// the first step that yields items.
func (o *Orchestrator) ladder(ctx context.Context, name, location string, cls query.Classification, semantic bool) lookup {
	if items := o.kb.ItemsForRestaurant(name, location); len(items) > 0 {
		o.monitor.LadderStep(StepExact, name, len(items))
		return lookup{Items: items, Step: StepExact, Name: items[0].RestaurantName}
	}
	o.monitor.LadderStep(StepExact, name, 0)

	loose := normalize.Loose(name)
	if loose == "" {
		return lookup{}
	}
	restaurants := o.kb.Restaurants()

	for _, r := range restaurants {
		if normalize.Loose(r.Name) != loose {
			continue
		}
		if items := o.kb.ItemsForRestaurant(r.Name, location); len(items) > 0 {
			o.monitor.LadderStep(StepLoose, name, len(items))
			return lookup{Items: items, Step: StepLoose, Name: r.Name}
		}
	}
	o.monitor.LadderStep(StepLoose, name, 0)

	for _, r := range restaurants {
		if !strings.Contains(normalize.Loose(r.Name), loose) {
			continue
		}
		if items := o.kb.ItemsForRestaurant(r.Name, location); len(items) > 0 {
			o.monitor.LadderStep(StepSubstring, name, len(items))
			return lookup{Items: items, Step: StepSubstring, Name: r.Name}
		}
	}
	o.monitor.LadderStep(StepSubstring, name, 0)

	if !semantic {
		return lookup{}
	}
	items := o.kb.Search(ctx, semanticQuery(name, cls), o.k*2, "")
	o.monitor.LadderStep(StepSemantic, name, len(items))
	if len(items) == 0 {
		return lookup{}
	}
	return lookup{Items: items, Step: StepSemantic}
}

// semanticQuery phrases a restaurant lookup for the vector index, adding
// words that carry the question's intent.
func semanticQuery(name string, cls query.Classification) string {
	parts := []string{name, "menu items"}
	switch cls.Intent {
	case query.IntentGlutenFreeSpecific, query.IntentGlutenFreeGeneral:
		parts = append(parts, "gluten free")
	case query.IntentPriceRange:
		parts = append(parts, "price")
	}
	if cls.VegOnly {
		parts = append(parts, "vegetarian")
	}
	if cls.Section != "" {
		parts = append(parts, cls.Section)
	}
	if cls.Keyword != "" {
		parts = append(parts, cls.Keyword)
	}
	return strings.Join(parts, " ")
}

// Retrieve gathers the menu items handed to the generator for cls and
// renders them as documents.
func (o *Orchestrator) Retrieve(ctx context.Context, cls query.Classification) []ai.ContextDocument {
	items := o.retrieveItems(ctx, cls)
	o.monitor.Retrieved(items)
	return Documents(items)
}

func (o *Orchestrator) retrieveItems(ctx context.Context, cls query.Classification) []core.MenuItem {
	switch {
	case cls.Targeted():
		found := o.ladder(ctx, cls.Restaurant, cls.Location, cls, true)
		items := narrow(found.Items, func(m *core.MenuItem) bool {
			return containsFold(m.Section, cls.Section)
		})
		if cls.VegOnly {
			items = narrow(items, (*core.MenuItem).IsVeg)
		}
		o.logger.Debug("restaurant lookup",
			"restaurant", cls.Restaurant,
			"step", found.Step.String(),
			"items", len(items))
		return ShapeBySection(Dedupe(items), o.menuCap, o.perSection)

	case cls.VegOnly:
		items := o.kb.VegItems("", cls.Location)
		if len(items) == 0 {
			return o.kb.Search(ctx, "vegetarian dishes", o.k, "")
		}
		items = Dedupe(items)
		return items[:min(len(items), vegItemCap)]

	default:
		return o.kb.Search(ctx, cls.Question, o.k, cls.Location)
	}
}

// narrow keeps the items matching keep, unless none do, in which case the
// input is returned unchanged.
func narrow(items []core.MenuItem, keep func(*core.MenuItem) bool) []core.MenuItem {
	var out []core.MenuItem
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	if len(out) == 0 {
		return items
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
