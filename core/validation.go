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


package core

import (
	"fmt"

	"github.com/poiesic/menukb/normalize"
)

// ValidateRestaurant validates a Restaurant according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - NormalizedName must equal normalize.Name(Name)
//
// Location and SourceURL may be empty.
func ValidateRestaurant(r *Restaurant) error {
	if r == nil {
		return fmt.Errorf("%w: restaurant is nil", ErrInvalidRestaurant)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRestaurant, ErrEmptyName)
	}
	if r.NormalizedName != normalize.Name(r.Name) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRestaurant, ErrJoinKeyMismatch, r.NormalizedName)
	}
	return nil
}

// ValidateMenuItem validates a MenuItem according to domain rules.
//
// Validation rules:
//   - Name and RestaurantName must not be empty
//   - NormalizedRestaurantName must equal normalize.Name(RestaurantName)
//   - Price must not be negative
//   - Dietary must be veg or non-veg
func ValidateMenuItem(m *MenuItem) error {
	if m == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidMenuItem)
	}
	if m.Name == "" || m.RestaurantName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMenuItem, ErrEmptyName)
	}
	if m.NormalizedRestaurantName != normalize.Name(m.RestaurantName) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidMenuItem, ErrJoinKeyMismatch, m.NormalizedRestaurantName)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMenuItem, ErrNegativePrice)
	}
	if err := ValidateDietary(m.Dietary); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMenuItem, err)
	}
	return nil
}

// ValidateDietary validates that a Dietary has a valid value.
func ValidateDietary(d Dietary) error {
	if d != DietaryVeg && d != DietaryNonVeg {
		return fmt.Errorf("%w: value %d", ErrInvalidDietary, d)
	}
	return nil
}

// ValidateGraph checks every entity, the join-key invariant and the mapping.
//
// Each item's NormalizedRestaurantName must resolve to exactly one Restaurant
// with the same RestaurantID and name, and every Mapping entry must point at
// a MenuItem.
func ValidateGraph(g *Graph) error {
	if g == nil {
		return fmt.Errorf("%w: graph is nil", ErrInvalidEntity)
	}
	restaurants := make(map[string][]*Restaurant)
	for i := range g.Entities {
		e := &g.Entities[i]
		switch e.Kind {
		case EntityRestaurant:
			if e.Restaurant == nil || e.MenuItem != nil {
				return fmt.Errorf("%w: entity %d", ErrInvalidEntity, i)
			}
			if err := ValidateRestaurant(e.Restaurant); err != nil {
				return fmt.Errorf("entity %d: %w", i, err)
			}
			restaurants[e.Restaurant.NormalizedName] = append(restaurants[e.Restaurant.NormalizedName], e.Restaurant)
		case EntityMenuItem:
			if e.MenuItem == nil || e.Restaurant != nil {
				return fmt.Errorf("%w: entity %d", ErrInvalidEntity, i)
			}
			if err := ValidateMenuItem(e.MenuItem); err != nil {
				return fmt.Errorf("entity %d: %w", i, err)
			}
		default:
			return fmt.Errorf("%w: entity %d has kind %d", ErrInvalidEntity, i, e.Kind)
		}
	}

	for i := range g.Entities {
		m := g.Entities[i].MenuItem
		if m == nil {
			continue
		}
		owners := restaurants[m.NormalizedRestaurantName]
		matched := 0
		for _, r := range owners {
			if r.ID == m.RestaurantID {
				matched++
				if r.Name != m.RestaurantName || r.Location != m.Location {
					return fmt.Errorf("%w: item %q does not match restaurant %q", ErrJoinKeyMismatch, m.Name, r.Name)
				}
			}
		}
		if matched != 1 {
			return fmt.Errorf("%w: item %q resolves to %d restaurants", ErrJoinKeyMismatch, m.Name, matched)
		}
	}

	for pos := range g.Mapping {
		if _, ok := g.Item(pos); !ok {
			return fmt.Errorf("%w: position %d -> %d", ErrMappingOutOfRange, pos, g.Mapping[pos])
		}
	}
	return nil
}
