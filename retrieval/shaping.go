package retrieval

import (
	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/core"
)

// ShapeBySection cuts items down to limit. When there are more than limit
// items, each section in first-seen order contributes at most perSection
// items before the result is truncated.
func ShapeBySection(items []core.MenuItem, limit, perSection int) []core.MenuItem {
	if len(items) <= limit {
		return items
	}

	var order []string
	bySection := make(map[string][]core.MenuItem)
	for _, item := range items {
		if _, ok := bySection[item.Section]; !ok {
			order = append(order, item.Section)
		}
		if len(bySection[item.Section]) < perSection {
			bySection[item.Section] = append(bySection[item.Section], item)
		}
	}

	shaped := make([]core.MenuItem, 0, limit)
	for _, section := range order {
		shaped = append(shaped, bySection[section]...)
		if len(shaped) >= limit {
			return shaped[:limit]
		}
	}
	return shaped
}

// Dedupe concatenates lists, keeping the first occurrence of each
// (restaurant, item) pair.
func Dedupe(lists ...[]core.MenuItem) []core.MenuItem {
	var out []core.MenuItem
	seen := make(map[[2]string]struct{})
	for _, list := range lists {
		for _, item := range list {
			key := item.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Documents renders items as generator context.
func Documents(items []core.MenuItem) []ai.ContextDocument {
	docs := make([]ai.ContextDocument, len(items))
	for i, item := range items {
		docs[i] = ai.ContextDocument{
			Restaurant:  item.RestaurantName,
			Location:    item.Location,
			Item:        item.Name,
			Section:     item.Section,
			Price:       item.Price,
			Description: item.Description,
		}
		if item.Dietary != 0 {
			docs[i].Dietary = item.Dietary.String()
		}
	}
	return docs
}
