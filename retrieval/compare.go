// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package retrieval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/kb"
	"github.com/poiesic/menukb/normalize"
)

const (
	topSections      = 3
	sampleItems      = 3
	commonDishes     = 5
	promptItemsLimit = 30
)

// Menu is one side of a comparison.
type Menu struct {
	Name  string
	Items []core.MenuItem
}

// MenuStats summarizes one menu.
type MenuStats struct {
	Name     string
	Size     int
	Veg      int
	NonVeg   int
	MinPrice float64
	MaxPrice float64
	// Priced is false when no item carries a positive price.
	Priced   bool
	Sections []string
	Samples  []string
}

// PriceRange renders the price span, or N/A when nothing is priced.
func (s MenuStats) PriceRange() string {
	if !s.Priced {
		return "N/A"
	}
	return fmt.Sprintf("₹%.0f - ₹%.0f", s.MinPrice, s.MaxPrice)
}

// ComparisonStats is a deterministic comparison of two menus.
type ComparisonStats struct {
	A, B MenuStats
	// Common holds lower-cased dish names present on both menus, sorted.
	Common []string
}

// Compare computes statistics for a and b.
func Compare(a, b Menu) ComparisonStats {
	return ComparisonStats{
		A:      menuStats(a),
		B:      menuStats(b),
		Common: commonNames(a.Items, b.Items),
	}
}

func menuStats(m Menu) MenuStats {
	s := MenuStats{Name: m.Name, Size: len(m.Items)}
	for i := range m.Items {
		if m.Items[i].IsVeg() {
			s.Veg++
		}
	}
	s.NonVeg = s.Size - s.Veg
	s.MinPrice, s.MaxPrice, s.Priced = kb.PriceBounds(m.Items)
	s.Sections = mostCommonSections(m.Items, topSections)
	for _, item := range m.Items[:min(len(m.Items), sampleItems)] {
		s.Samples = append(s.Samples, item.Name)
	}
	return s
}

// mostCommonSections ranks non-empty sections by item count. Ties keep
// first-seen order.
func mostCommonSections(items []core.MenuItem, n int) []string {
	var order []string
	counts := make(map[string]int)
	for _, item := range items {
		if item.Section == "" {
			continue
		}
		if _, ok := counts[item.Section]; !ok {
			order = append(order, item.Section)
		}
		counts[item.Section]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[:min(len(order), n)]
}

func commonNames(a, b []core.MenuItem) []string {
	names := make(map[string]bool, len(a))
	for _, item := range a {
		names[strings.ToLower(item.Name)] = true
	}
	var common []string
	for _, item := range b {
		name := strings.ToLower(item.Name)
		if names[name] {
			common = append(common, name)
			delete(names, name)
		}
	}
	sort.Strings(common)
	return common
}

// String renders the comparison as markdown.
func (c ComparisonStats) String() string {
	a, b := c.A, c.B
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Comparison between %s and %s:**\n\n", a.Name, b.Name)
	fmt.Fprintf(&sb, "**Menu Size:**\n- %s: %d items\n- %s: %d items\n\n", a.Name, a.Size, b.Name, b.Size)
	fmt.Fprintf(&sb, "**Veg/Non-Veg Count:**\n- %s: %d veg, %d non-veg\n- %s: %d veg, %d non-veg\n\n",
		a.Name, a.Veg, a.NonVeg, b.Name, b.Veg, b.NonVeg)
	fmt.Fprintf(&sb, "**Price Range:**\n- %s: %s\n- %s: %s\n\n", a.Name, a.PriceRange(), b.Name, b.PriceRange())
	fmt.Fprintf(&sb, "**Popular Sections:**\n- %s: %s\n- %s: %s\n\n",
		a.Name, strings.Join(a.Sections, ", "), b.Name, strings.Join(b.Sections, ", "))
	fmt.Fprintf(&sb, "**Sample Items:**\n- %s: %s\n- %s: %s\n\n",
		a.Name, strings.Join(a.Samples, ", "), b.Name, strings.Join(b.Samples, ", "))
	fmt.Fprintf(&sb, "**Common Dishes:** %s\n", c.commonText())
	return sb.String()
}

func (c ComparisonStats) commonText() string {
	if len(c.Common) == 0 {
		return "None"
	}
	shown := c.Common[:min(len(c.Common), commonDishes)]
	titled := make([]string, len(shown))
	for i, name := range shown {
		titled[i] = normalize.Title(name)
	}
	return strings.Join(titled, ", ")
}

// ComparisonPrompt asks the generator to compare two menus. Each menu
// contributes at most 30 lines. A non-empty focus narrows the comparison.
func ComparisonPrompt(a, b Menu, focus string) string {
	var sb strings.Builder
	sb.WriteString("Compare the following two restaurants based on their menu, price range, and variety. ")
	sb.WriteString("Highlight unique items and similarities.")
	if focus != "" {
		fmt.Fprintf(&sb, " Focus on %s.", focus)
	}
	sb.WriteString("\n\n")
	writePromptMenu(&sb, a)
	sb.WriteString("\n")
	writePromptMenu(&sb, b)
	return sb.String()
}

func writePromptMenu(sb *strings.Builder, m Menu) {
	fmt.Fprintf(sb, "%s Menu:\n", m.Name)
	for _, item := range m.Items[:min(len(m.Items), promptItemsLimit)] {
		fmt.Fprintf(sb, "%s (%s, ₹%.0f)\n", item.Name, item.Section, item.Price)
	}
}
