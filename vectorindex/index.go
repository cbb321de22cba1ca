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


// Package vectorindex provides an exact, flat nearest-neighbour index over
// fixed-dimension float32 vectors using squared Euclidean distance.
//
// Positions are assigned in insertion order and never change, so position i
// can be joined against any parallel array built in the same order.
package vectorindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDimensionMismatch indicates a vector whose length differs from the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidDimension indicates a non-positive dimension.
	ErrInvalidDimension = errors.New("invalid index dimension")
)

// Hit is a single search result.
type Hit struct {
	Position int
	Distance float32
}

// Index is a flat L2 index. The zero value is not usable; call New.
type Index struct {
	mu   sync.RWMutex
	dim  int
	data []float32
}

// New creates an empty index for vectors of length dim.
func New(dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &Index{dim: dim}, nil
}

// FromVectors creates an index over flat, a row-major concatenation of
// vectors of length dim. flat is copied.
func FromVectors(dim int, flat []float32) (*Index, error) {
	idx, err := New(dim)
	if err != nil {
		return nil, err
	}
	if len(flat)%dim != 0 {
		return nil, fmt.Errorf("%w: %d values is not a multiple of %d", ErrDimensionMismatch, len(flat), dim)
	}
	idx.data = append(make([]float32, 0, len(flat)), flat...)
	return idx, nil
}

// Add appends vectors in order. Either all vectors are added or none.
func (x *Index) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != x.dim {
			return fmt.Errorf("%w: vector %d has %d values, want %d", ErrDimensionMismatch, i, len(v), x.dim)
		}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	for _, v := range vectors {
		x.data = append(x.data, v...)
	}
	return nil
}

// Search returns up to k positions ordered by ascending distance to query.
// Equal distances keep insertion order.
func (x *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != x.dim {
		return nil, fmt.Errorf("%w: query has %d values, want %d", ErrDimensionMismatch, len(query), x.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	n := len(x.data) / x.dim
	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		hits[i] = Hit{Position: i, Distance: squaredL2(query, x.data[i*x.dim:(i+1)*x.dim])}
	}
	x.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.data) / x.dim
}

// Dim returns the vector dimension.
func (x *Index) Dim() int {
	return x.dim
}

// Vector returns a copy of the vector at position i.
func (x *Index) Vector(i int) ([]float32, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if i < 0 || (i+1)*x.dim > len(x.data) {
		return nil, false
	}
	return append([]float32(nil), x.data[i*x.dim:(i+1)*x.dim]...), true
}

// Flat returns a copy of all vectors concatenated in position order.
func (x *Index) Flat() []float32 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]float32(nil), x.data...)
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
