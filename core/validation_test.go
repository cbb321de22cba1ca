package core

import (
	"errors"
	"testing"
)

func testRestaurant() Restaurant {
	return Restaurant{
		ID:             "the-good-bowl_koramangala",
		Name:           "The Good-Bowl",
		NormalizedName: "the good bowl",
		Location:       "Koramangala",
	}
}

func testItem(r Restaurant, name string, price float64, d Dietary) MenuItem {
	return MenuItem{
		ID:                       MenuItemID(r.ID, name),
		RestaurantID:             r.ID,
		RestaurantName:           r.Name,
		NormalizedRestaurantName: r.NormalizedName,
		Section:                  "Bowls",
		Name:                     name,
		Price:                    price,
		Dietary:                  d,
		Location:                 r.Location,
	}
}

func TestValidateRestaurant(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Restaurant)
		wantErr error
	}{
		{name: "valid", mutate: func(r *Restaurant) {}},
		{name: "empty name", mutate: func(r *Restaurant) { r.Name = "" }, wantErr: ErrEmptyName},
		{name: "stale normalized name", mutate: func(r *Restaurant) { r.NormalizedName = "The Good-Bowl" }, wantErr: ErrJoinKeyMismatch},
		{name: "empty location allowed", mutate: func(r *Restaurant) { r.Location = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRestaurant()
			tt.mutate(&r)
			err := ValidateRestaurant(&r)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRestaurant() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrInvalidRestaurant) {
				t.Errorf("ValidateRestaurant() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := ValidateRestaurant(nil); !errors.Is(err, ErrInvalidRestaurant) {
		t.Errorf("ValidateRestaurant(nil) error = %v", err)
	}
}

func TestValidateMenuItem(t *testing.T) {
	r := testRestaurant()
	tests := []struct {
		name    string
		mutate  func(m *MenuItem)
		wantErr error
	}{
		{name: "valid", mutate: func(m *MenuItem) {}},
		{name: "zero price is unknown, not invalid", mutate: func(m *MenuItem) { m.Price = 0 }},
		{name: "negative price", mutate: func(m *MenuItem) { m.Price = -1 }, wantErr: ErrNegativePrice},
		{name: "empty name", mutate: func(m *MenuItem) { m.Name = "" }, wantErr: ErrEmptyName},
		{name: "bad dietary", mutate: func(m *MenuItem) { m.Dietary = 0 }, wantErr: ErrInvalidDietary},
		{name: "join key mismatch", mutate: func(m *MenuItem) { m.NormalizedRestaurantName = "other" }, wantErr: ErrJoinKeyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testItem(r, "Burrito Bowl", 250, DietaryVeg)
			tt.mutate(&m)
			err := ValidateMenuItem(&m)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMenuItem() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrInvalidMenuItem) {
				t.Errorf("ValidateMenuItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGraph(t *testing.T) {
	r := testRestaurant()
	other := Restaurant{ID: "the-good-bowl_hsr", Name: "The Good-Bowl", NormalizedName: "the good bowl", Location: "Hsr"}

	valid := func() *Graph {
		return &Graph{
			Entities: []Entity{
				RestaurantEntity(r),
				MenuItemEntity(testItem(r, "Burrito Bowl", 250, DietaryVeg)),
				RestaurantEntity(other),
				MenuItemEntity(testItem(other, "Chicken Bowl", 300, DietaryNonVeg)),
			},
			Mapping: []int{1, 3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(g *Graph)
		wantErr error
	}{
		{name: "valid with same name in two locations", mutate: func(g *Graph) {}},
		{
			name:    "mapping points at restaurant",
			mutate:  func(g *Graph) { g.Mapping[0] = 0 },
			wantErr: ErrMappingOutOfRange,
		},
		{
			name:    "mapping out of range",
			mutate:  func(g *Graph) { g.Mapping = append(g.Mapping, 9) },
			wantErr: ErrMappingOutOfRange,
		},
		{
			name: "orphan item",
			mutate: func(g *Graph) {
				g.Entities[1].MenuItem.RestaurantID = "missing"
			},
			wantErr: ErrJoinKeyMismatch,
		},
		{
			name: "denormalized location drift",
			mutate: func(g *Graph) {
				g.Entities[1].MenuItem.Location = "Elsewhere"
			},
			wantErr: ErrJoinKeyMismatch,
		},
		{
			name: "kind without payload",
			mutate: func(g *Graph) {
				g.Entities[0] = Entity{Kind: EntityMenuItem}
			},
			wantErr: ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid()
			tt.mutate(g)
			err := ValidateGraph(g)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateGraph() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGraph() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
