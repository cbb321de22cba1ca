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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRestaurant indicates a Restaurant failed validation.
	ErrInvalidRestaurant = errors.New("invalid restaurant")

	// ErrInvalidMenuItem indicates a MenuItem failed validation.
	ErrInvalidMenuItem = errors.New("invalid menu item")

	// ErrInvalidEntity indicates an Entity whose Kind does not match its payload.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrEmptyName indicates a required name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrJoinKeyMismatch indicates a normalized name that does not match its source name
	// or does not resolve to exactly one restaurant.
	ErrJoinKeyMismatch = errors.New("normalized restaurant name mismatch")

	// ErrNegativePrice indicates a price below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidDietary indicates an invalid Dietary value.
	ErrInvalidDietary = errors.New("invalid dietary value")

	// ErrMappingOutOfRange indicates an index mapping entry that does not point at a menu item.
	ErrMappingOutOfRange = errors.New("mapping entry does not reference a menu item")
)
