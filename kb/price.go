package kb

import (
	"fmt"
	"math"

	"github.com/poiesic/menukb/core"
)

// PriceStatus distinguishes a priced restaurant from one without parsed
// prices and from an unknown one.
type PriceStatus int

const (
	PriceFound PriceStatus = iota + 1
	PriceNoData
	PriceNotFound
)

func (s PriceStatus) String() string {
	switch s {
	case PriceFound:
		return "found"
	case PriceNoData:
		return "no_data"
	case PriceNotFound:
		return "not_found"
	}
	return fmt.Sprintf("PriceStatus(%d)", int(s))
}

// PriceRange is the result of a price lookup. Min and Max are only set when
// Status is PriceFound.
type PriceRange struct {
	Status     PriceStatus
	Restaurant string
	Location   string
	Min        float64
	Max        float64
}

// Range renders the bounds as "100–250", or a single price when they are
// equal. It is empty unless Status is PriceFound.
func (p PriceRange) Range() string {
	if p.Status != PriceFound {
		return ""
	}
	if p.Min == p.Max {
		return formatPrice(p.Min)
	}
	return formatPrice(p.Min) + "–" + formatPrice(p.Max)
}

// String renders the user-facing sentence for p.
func (p PriceRange) String() string {
	loc := ""
	if p.Location != "" {
		loc = " in " + p.Location
	}
	switch p.Status {
	case PriceFound:
		if p.Min == p.Max {
			return fmt.Sprintf("Items at %s%s are priced at ₹%s.", p.Restaurant, loc, formatPrice(p.Min))
		}
		return fmt.Sprintf("Price range for %s%s is ₹%s - ₹%s.", p.Restaurant, loc, formatPrice(p.Min), formatPrice(p.Max))
	case PriceNoData:
		return fmt.Sprintf("No price information available for %s%s.", p.Restaurant, loc)
	default:
		return fmt.Sprintf("Restaurant '%s' not found in database.", p.Restaurant)
	}
}

// PriceRange collects the positive prices of restaurant, optionally filtered
// by location substring.
func (kb *KnowledgeBase) PriceRange(restaurant, location string) PriceRange {
	result := PriceRange{Restaurant: restaurant, Location: location}
	if !kb.HasRestaurant(restaurant) {
		result.Status = PriceNotFound
		return result
	}

	lo, hi, ok := PriceBounds(kb.ItemsForRestaurant(restaurant, location))
	if !ok {
		result.Status = PriceNoData
		return result
	}
	result.Status = PriceFound
	result.Min, result.Max = lo, hi
	return result
}

// PriceBounds returns the lowest and highest positive price among items.
// ok is false when no item has a positive price.
func PriceBounds(items []core.MenuItem) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, item := range items {
		if item.Price <= 0 {
			continue
		}
		lo = math.Min(lo, item.Price)
		hi = math.Max(hi, item.Price)
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.0f", p)
}
