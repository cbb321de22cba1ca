package retrieval

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/menukb/ai/mock"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/ingestion"
	"github.com/poiesic/menukb/kb"
	"github.com/poiesic/menukb/query"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func raw(name, price, description string) ingestion.RawItem {
	return ingestion.RawItem{Name: name, Price: ingestion.PriceText(price), Description: description}
}

// testCatalog holds three restaurants:
//   - Faasos (Hsr Layout): Wraps and Starters, 3 veg and 1 non-veg
//   - McDonald's (Koramangala): Burgers and Sides, 2 veg
//   - Biryani Blues (Btm): Rice and Desserts, 3 veg and 1 non-veg
func testCatalog() *ingestion.Catalog {
	return &ingestion.Catalog{Entries: []ingestion.CatalogEntry{
		{Key: "faasos_hsr_layout", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("Faasos"),
			Veg: []ingestion.MenuSection{
				{Section: "Wraps", Items: []ingestion.RawItem{
					raw("Paneer Wrap", "100", "Paneer in a soft wrap"),
					raw("Veg Roll", "₹250", ""),
				}},
				{Section: "Starters", Items: []ingestion.RawItem{
					raw("Masala Fries", "120", "Crispy potato"),
				}},
			},
			NonVeg: []ingestion.MenuSection{{Section: "Wraps", Items: []ingestion.RawItem{
				raw("Chicken Wrap", "250", "Grilled chicken"),
			}}},
		}},
		{Key: "mcdonalds_koramangala", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("McDonald's"),
			Veg: []ingestion.MenuSection{
				{Section: "Burgers", Items: []ingestion.RawItem{raw("McAloo Tikki", "60", "Potato patty in a bun")}},
				{Section: "Sides", Items: []ingestion.RawItem{raw("Corn Cup", "90", "Sweet corn")}},
			},
		}},
		{Key: "biryaniblues_btm", Record: ingestion.RestaurantRecord{
			RestaurantName: strptr("Biryani Blues"),
			Veg: []ingestion.MenuSection{
				{Section: "Rice", Items: []ingestion.RawItem{raw("Veg Biryani", "199", "Basmati rice")}},
				{Section: "Desserts", Items: []ingestion.RawItem{
					raw("Gulab Jamun", "99", "Made with maida"),
					raw("Phirni", "120", "Rice pudding"),
				}},
			},
			NonVeg: []ingestion.MenuSection{{Section: "Rice", Items: []ingestion.RawItem{
				raw("Chicken Biryani", "299", "Dum cooked"),
			}}},
		}},
	}}
}

func newTestKB(t *testing.T) *kb.KnowledgeBase {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 8
	knowledge, err := kb.Build(context.Background(), testCatalog(), embedder)
	require.NoError(t, err)
	return knowledge
}

func newTestOrchestrator(t *testing.T, opts ...Option) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(newTestKB(t), opts...)
	require.NoError(t, err)
	return o
}

func menuItem(restaurant, section, name string, price float64, veg bool) core.MenuItem {
	dietary := core.DietaryNonVeg
	if veg {
		dietary = core.DietaryVeg
	}
	return core.MenuItem{
		RestaurantName: restaurant,
		Section:        section,
		Name:           name,
		Price:          price,
		Dietary:        dietary,
	}
}

func itemNames(items []core.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

type ladderEvent struct {
	Step  Step
	Found int
}

// recordingMonitor captures every hook call.
type recordingMonitor struct {
	mu         sync.Mutex
	classified []query.Classification
	steps      []ladderEvent
	retrieved  [][]core.MenuItem
	strategies []string
	answers    []Answer
}

func (m *recordingMonitor) Classified(cls query.Classification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classified = append(m.classified, cls)
}

func (m *recordingMonitor) LadderStep(step Step, _ string, found int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, ladderEvent{Step: step, Found: found})
}

func (m *recordingMonitor) Retrieved(items []core.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retrieved = append(m.retrieved, items)
}

func (m *recordingMonitor) StrategyTried(strategy string, answered bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strategies = append(m.strategies, fmt.Sprintf("%s:%t", strategy, answered))
}

func (m *recordingMonitor) Finish(answer Answer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, answer)
}
