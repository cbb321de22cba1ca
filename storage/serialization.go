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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/menukb/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes, returning the bytes consumed.
func UnmarshalID(data []byte) (core.ID, int, error) {
	return core.IDMUS.Unmarshal(data)
}

// Stamp prefixes payload with a snapshot generation.
func Stamp(generation uint64, payload []byte) []byte {
	head := MarshalID(core.ID(generation))
	return append(head, payload...)
}

// Unstamp splits a stamped value into generation and payload.
func Unstamp(data []byte) (uint64, []byte, error) {
	gen, n, err := UnmarshalID(data)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: generation: %w", ErrTruncatedData, err)
	}
	return uint64(gen), data[n:], nil
}

// MarshalEntities serializes an entity collection as a count followed by entities.
func MarshalEntities(entities []core.Entity) []byte {
	size := varint.Uint64.Size(uint64(len(entities)))
	for _, e := range entities {
		size += core.EntityMUS.Size(e)
	}
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(len(entities)), buf)
	for _, e := range entities {
		n += core.EntityMUS.Marshal(e, buf[n:])
	}
	return buf
}

// UnmarshalEntities deserializes an entity collection.
func UnmarshalEntities(data []byte) ([]core.Entity, error) {
	count, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: entity count: %w", ErrSerializationFailed, err)
	}
	// every entity takes at least two bytes
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d entities in %d bytes", ErrTruncatedData, count, len(data))
	}
	entities := make([]core.Entity, 0, count)
	for i := uint64(0); i < count; i++ {
		e, m, err := core.EntityMUS.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
		entities = append(entities, e)
	}
	return entities, nil
}

// MarshalMapping serializes the index-to-entity mapping.
func MarshalMapping(mapping []int) []byte {
	size := varint.Uint64.Size(uint64(len(mapping)))
	for _, v := range mapping {
		size += varint.Uint64.Size(uint64(v))
	}
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(len(mapping)), buf)
	for _, v := range mapping {
		n += varint.Uint64.Marshal(uint64(v), buf[n:])
	}
	return buf
}

// UnmarshalMapping deserializes the index-to-entity mapping.
func UnmarshalMapping(data []byte) ([]int, error) {
	count, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: mapping count: %w", ErrSerializationFailed, err)
	}
	if count > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d mapping entries in %d bytes", ErrTruncatedData, count, len(data))
	}
	mapping := make([]int, 0, count)
	for i := uint64(0); i < count; i++ {
		v, m, err := varint.Uint64.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: mapping entry %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
		mapping = append(mapping, int(v))
	}
	return mapping, nil
}

// MarshalVectors serializes a flat vector index as dimension, value count
// and raw float32 values. The encoding is bit-exact.
func MarshalVectors(dim int, flat []float32) []byte {
	size := varint.Uint64.Size(uint64(dim)) + varint.Uint64.Size(uint64(len(flat)))
	for _, f := range flat {
		size += raw.Float32.Size(f)
	}
	buf := make([]byte, size)
	n := varint.Uint64.Marshal(uint64(dim), buf)
	n += varint.Uint64.Marshal(uint64(len(flat)), buf[n:])
	for _, f := range flat {
		n += raw.Float32.Marshal(f, buf[n:])
	}
	return buf
}

// UnmarshalVectors deserializes a flat vector index.
func UnmarshalVectors(data []byte) (int, []float32, error) {
	dim, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: dimension: %w", ErrSerializationFailed, err)
	}
	count, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: vector count: %w", ErrSerializationFailed, err)
	}
	n += m
	if count > uint64(len(data)) || count*4 != uint64(len(data)-n) {
		return 0, nil, fmt.Errorf("%w: %d values in %d bytes", ErrTruncatedData, count, len(data)-n)
	}
	flat := make([]float32, count)
	for i := range flat {
		flat[i], m, err = raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return 0, nil, fmt.Errorf("%w: value %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
	}
	return int(dim), flat, nil
}
