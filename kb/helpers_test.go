package kb

import (
	"context"
	"testing"

	"github.com/poiesic/menukb/ai/mock"
	"github.com/poiesic/menukb/ingestion"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func item(name, price, description string) ingestion.RawItem {
	return ingestion.RawItem{Name: name, Price: ingestion.PriceText(price), Description: description}
}

// testCatalog holds three restaurants:
//   - Faasos (Hsr Layout): veg 100, 250; non-veg 250
//   - The Good Bowl (Koramangala): one unpriced veg item
//   - Biryani Blues (Btm): veg 199, 99; non-veg 299
func testCatalog() *ingestion.Catalog {
	return &ingestion.Catalog{Entries: []ingestion.CatalogEntry{
		{Key: "faasos_hsr_layout", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("Faasos"),
			Veg: []ingestion.MenuSection{{Section: "Wraps", Items: []ingestion.RawItem{
				item("Paneer Wrap", "100", "Paneer in a soft wrap"),
				item("Veg Roll", "₹250", ""),
			}}},
			NonVeg: []ingestion.MenuSection{{Section: "Wraps", Items: []ingestion.RawItem{
				item("Chicken Wrap", "250", "Grilled chicken"),
			}}},
		}},
		{Key: "goodbowl_koramangala", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("The Good Bowl"),
			Veg: []ingestion.MenuSection{{Section: "Bowls", Items: []ingestion.RawItem{
				item("Dal Bowl", "", "Yellow dal with rice"),
			}}},
		}},
		{Key: "biryaniblues_btm", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("Biryani Blues"),
			Veg: []ingestion.MenuSection{
				{Section: "Rice", Items: []ingestion.RawItem{item("Veg Biryani", "199", "Basmati rice")}},
				{Section: "Desserts", Items: []ingestion.RawItem{item("Gulab Jamun", "99", "Made with maida")}},
			},
			NonVeg: []ingestion.MenuSection{{Section: "Rice", Items: []ingestion.RawItem{
				item("Chicken Biryani", "299", "Dum cooked"),
			}}},
		}},
	}}
}

func testEmbedder() *mock.MockEmbedder {
	e := mock.NewMockEmbedder()
	e.Dimension = 8
	return e
}

func newTestKB(t *testing.T, opts ...Option) *KnowledgeBase {
	t.Helper()
	kb, err := Build(context.Background(), testCatalog(), testEmbedder(), opts...)
	require.NoError(t, err)
	return kb
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}
