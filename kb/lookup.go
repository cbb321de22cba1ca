package kb

import (
	"context"
	"sort"
	"strings"

	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/normalize"
)

// searchOverfetch is how many neighbours Search requests per wanted result,
// so location filtering and dedup still leave k items.
const searchOverfetch = 5

// VegCount is the number of vegetarian items listed by a restaurant.
type VegCount struct {
	Restaurant string
	Count      int
}

// Search returns up to k menu items semantically closest to text, optionally
// restricted to locations containing location. Results carry no duplicate
// (restaurant, item) pairs. Embedding failures are logged and yield no
// results.
func (kb *KnowledgeBase) Search(ctx context.Context, text string, k int, location string) []core.MenuItem {
	if k <= 0 || kb.index == nil || kb.index.Len() == 0 {
		return nil
	}

	vector, err := kb.embedder.EmbedText(ctx, text)
	if err != nil {
		kb.logger.Error("error generating embedding for query", "query", text, "err", err)
		return nil
	}
	hits, err := kb.index.Search(vector, k*searchOverfetch)
	if err != nil {
		kb.logger.Error("error searching vector index", "err", err)
		return nil
	}

	results := make([]core.MenuItem, 0, k)
	seen := make(map[[2]string]struct{}, k)
	for _, hit := range hits {
		item, ok := kb.graph.Item(hit.Position)
		if !ok {
			continue
		}
		if !containsFold(item.Location, location) {
			continue
		}
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, *item)
		if len(results) == k {
			break
		}
	}
	kb.logger.Debug("semantic search", "query", text, "k", k, "location", location, "hits", len(hits), "results", len(results))
	return results
}

// ItemsForRestaurant returns the items of the restaurant whose normalized
// name equals normalize.Name(name), optionally filtered by location
// substring. No fuzzy matching is done here.
func (kb *KnowledgeBase) ItemsForRestaurant(name, location string) []core.MenuItem {
	norm := normalize.Name(name)
	return kb.filterItems(func(m *core.MenuItem) bool {
		return m.NormalizedRestaurantName == norm && containsFold(m.Location, location)
	})
}

// VegItems returns vegetarian items. Empty restaurant or location disables
// that filter.
func (kb *KnowledgeBase) VegItems(restaurant, location string) []core.MenuItem {
	norm := normalize.Name(restaurant)
	return kb.filterItems(func(m *core.MenuItem) bool {
		if !m.IsVeg() {
			return false
		}
		if restaurant != "" && m.NormalizedRestaurantName != norm {
			return false
		}
		return containsFold(m.Location, location)
	})
}

// ItemsMatchingName returns items whose name contains substr,
// case-insensitively.
func (kb *KnowledgeBase) ItemsMatchingName(substr string) []core.MenuItem {
	if strings.TrimSpace(substr) == "" {
		return nil
	}
	return kb.filterItems(func(m *core.MenuItem) bool {
		return containsFold(m.Name, substr)
	})
}

// Items returns every menu item in entity order.
func (kb *KnowledgeBase) Items() []core.MenuItem {
	return kb.filterItems(func(*core.MenuItem) bool { return true })
}

// Restaurants returns every restaurant in entity order.
func (kb *KnowledgeBase) Restaurants() []core.Restaurant {
	var out []core.Restaurant
	for _, e := range kb.graph.Entities {
		if e.Kind == core.EntityRestaurant {
			out = append(out, *e.Restaurant)
		}
	}
	return out
}

// HasRestaurant reports whether a restaurant with the same normalized name
// exists.
func (kb *KnowledgeBase) HasRestaurant(name string) bool {
	return len(kb.restaurants[normalize.Name(name)]) > 0
}

// LocationsFor returns the sorted unique names of restaurants whose location
// contains substr, case-insensitively.
func (kb *KnowledgeBase) LocationsFor(substr string) []string {
	if strings.TrimSpace(substr) == "" {
		return nil
	}
	names := make(map[string]struct{})
	for _, e := range kb.graph.Entities {
		switch e.Kind {
		case core.EntityRestaurant:
			if containsFold(e.Restaurant.Location, substr) {
				names[e.Restaurant.Name] = struct{}{}
			}
		case core.EntityMenuItem:
			if containsFold(e.MenuItem.Location, substr) {
				names[e.MenuItem.RestaurantName] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// VegCounts ranks restaurants by their number of vegetarian items, most
// first. Ties are ordered by name. Restaurants without veg items are omitted.
func (kb *KnowledgeBase) VegCounts() []VegCount {
	counts := make(map[string]int)
	for _, pos := range kb.items {
		m := kb.graph.Entities[pos].MenuItem
		if m.IsVeg() {
			counts[m.RestaurantName]++
		}
	}
	out := make([]VegCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, VegCount{Restaurant: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Restaurant < out[j].Restaurant
	})
	return out
}

func (kb *KnowledgeBase) filterItems(keep func(*core.MenuItem) bool) []core.MenuItem {
	var out []core.MenuItem
	for _, pos := range kb.items {
		m := kb.graph.Entities[pos].MenuItem
		if keep(m) {
			out = append(out, *m)
		}
	}
	return out
}

// containsFold reports whether s contains substr ignoring case. An empty
// substr matches everything.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}
