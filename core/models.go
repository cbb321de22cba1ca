package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MenuItemID derives the ID of an item from its owning restaurant and name.
func MenuItemID(restaurantID, name string) ID {
	return IDFromContent(restaurantID + "/" + name)
}

// Dietary classifies a menu item as vegetarian or not.
type Dietary int

const (
	// DietaryVeg marks items listed under a restaurant's veg sections.
	DietaryVeg Dietary = iota + 1
	// DietaryNonVeg marks items listed under a restaurant's non-veg sections.
	DietaryNonVeg
)

func (d Dietary) String() string {
	switch d {
	case DietaryVeg:
		return "veg"
	case DietaryNonVeg:
		return "non-veg"
	}
	return fmt.Sprintf("Dietary(%d)", int(d))
}

// ParseDietary converts "veg" or "non-veg" (also "non_veg") to a Dietary.
func ParseDietary(s string) (Dietary, error) {
	switch s {
	case "veg":
		return DietaryVeg, nil
	case "non-veg", "non_veg":
		return DietaryNonVeg, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDietary, s)
}

// Restaurant is one scraped restaurant. ID is the raw catalog key.
type Restaurant struct {
	ID             string
	Name           string
	NormalizedName string // join key, always normalize.Name(Name)
	Location       string
	SourceURL      string
}

// MenuItem is a single line of a restaurant menu.
// The restaurant fields are copied from the owning Restaurant.
type MenuItem struct {
	ID                       ID
	RestaurantID             string
	RestaurantName           string
	NormalizedRestaurantName string
	Section                  string
	Name                     string
	Price                    float64 // 0 means unknown
	Description              string
	Dietary                  Dietary
	Location                 string
}

// Key returns the (restaurant, item) pair used for deduplication.
func (m *MenuItem) Key() [2]string {
	return [2]string{m.RestaurantName, m.Name}
}

// IsVeg reports whether the item came from a veg section.
func (m *MenuItem) IsVeg() bool {
	return m.Dietary == DietaryVeg
}

// EntityKind tags the variant held by an Entity.
type EntityKind int

const (
	EntityRestaurant EntityKind = iota + 1
	EntityMenuItem
)

func (k EntityKind) String() string {
	switch k {
	case EntityRestaurant:
		return "restaurant"
	case EntityMenuItem:
		return "menu_item"
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// Entity holds exactly one of Restaurant or MenuItem, selected by Kind.
type Entity struct {
	Kind       EntityKind
	Restaurant *Restaurant
	MenuItem   *MenuItem
}

// RestaurantEntity wraps r in an Entity.
func RestaurantEntity(r Restaurant) Entity {
	return Entity{Kind: EntityRestaurant, Restaurant: &r}
}

// MenuItemEntity wraps m in an Entity.
func MenuItemEntity(m MenuItem) Entity {
	return Entity{Kind: EntityMenuItem, MenuItem: &m}
}

// Graph is the flat entity collection produced by a build.
// Mapping[i] is the position in Entities of the MenuItem whose embedding
// sits at position i of the vector index. Mapping is append-only.
type Graph struct {
	Entities []Entity
	Mapping  []int
}

// Item returns the MenuItem embedded at vector position pos.
func (g *Graph) Item(pos int) (*MenuItem, bool) {
	if pos < 0 || pos >= len(g.Mapping) {
		return nil, false
	}
	idx := g.Mapping[pos]
	if idx < 0 || idx >= len(g.Entities) {
		return nil, false
	}
	e := g.Entities[idx]
	if e.Kind != EntityMenuItem || e.MenuItem == nil {
		return nil, false
	}
	return e.MenuItem, true
}
