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


package badger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) (*SnapshotRepository, error) {
	return &SnapshotRepository{
		backend: backend,
		logger:  slog.Default().With("component", "snapshot-repository"),
	}, nil
}

// Close releases resources. SnapshotRepository has no resources to release.
func (r *SnapshotRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SnapshotRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveSnapshot writes entities, mapping and index under prefix in one
// read-write transaction.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, prefix string, snap *storage.Snapshot) error {
	if len(snap.Vectors) != len(snap.Mapping)*snap.Dim {
		return fmt.Errorf("%w: %d values for %d mapping entries of dimension %d",
			storage.ErrCacheInconsistent, len(snap.Vectors), len(snap.Mapping), snap.Dim)
	}

	entities := storage.MarshalEntities(snap.Entities)
	mapping := storage.MarshalMapping(snap.Mapping)
	index := storage.MarshalVectors(snap.Dim, snap.Vectors)
	if snap.Generation == 0 {
		snap.Generation = generationOf(entities, mapping, index)
	}

	keys := snapshotKeys(prefix)
	values := [3][]byte{
		storage.Stamp(snap.Generation, entities),
		storage.Stamp(snap.Generation, mapping),
		storage.Stamp(snap.Generation, index),
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i := range keys {
			if err := tx.Set(keys[i], values[i]); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", prefix, err)
	}

	r.logger.Debug("snapshot saved",
		"prefix", prefix,
		"generation", snap.Generation,
		"entities", len(snap.Entities),
		"vectors", len(snap.Mapping))
	return nil
}

// LoadSnapshot reads and cross-checks the three artifacts stored under prefix.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, prefix string) (*storage.Snapshot, error) {
	keys := snapshotKeys(prefix)
	var values [3][]byte

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i := range keys {
			v, err := readValue(tx, keys[i])
			if err != nil {
				return err
			}
			values[i] = v
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", prefix, err)
	}

	var missing []string
	for i, v := range values {
		if v == nil {
			missing = append(missing, string(keys[i]))
		}
	}
	switch len(missing) {
	case 0:
	case len(keys):
		return nil, storage.ErrCacheMiss
	default:
		return nil, fmt.Errorf("%w: missing %v", storage.ErrCacheInconsistent, missing)
	}

	var gens [3]uint64
	var payloads [3][]byte
	for i, v := range values {
		gens[i], payloads[i], err = storage.Unstamp(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", storage.ErrCacheInconsistent, keys[i], err)
		}
	}
	if gens[0] != gens[1] || gens[0] != gens[2] {
		return nil, fmt.Errorf("%w: generations %d/%d/%d", storage.ErrCacheInconsistent, gens[0], gens[1], gens[2])
	}

	snap := &storage.Snapshot{Generation: gens[0]}
	if snap.Entities, err = storage.UnmarshalEntities(payloads[0]); err != nil {
		return nil, fmt.Errorf("%w: entities: %w", storage.ErrCacheInconsistent, err)
	}
	if snap.Mapping, err = storage.UnmarshalMapping(payloads[1]); err != nil {
		return nil, fmt.Errorf("%w: mapping: %w", storage.ErrCacheInconsistent, err)
	}
	if snap.Dim, snap.Vectors, err = storage.UnmarshalVectors(payloads[2]); err != nil {
		return nil, fmt.Errorf("%w: index: %w", storage.ErrCacheInconsistent, err)
	}
	if len(snap.Vectors) != len(snap.Mapping)*snap.Dim {
		return nil, fmt.Errorf("%w: index holds %d values, mapping has %d entries of dimension %d",
			storage.ErrCacheInconsistent, len(snap.Vectors), len(snap.Mapping), snap.Dim)
	}
	return snap, nil
}

// DeleteSnapshot removes all artifacts under prefix in one transaction.
func (r *SnapshotRepository) DeleteSnapshot(ctx context.Context, prefix string) error {
	keys := snapshotKeys(prefix)
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, k := range keys {
			if err := tx.Delete(k); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// generationOf hashes the encoded artifacts into a non-zero stamp.
func generationOf(parts ...[]byte) uint64 {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	gen := uint64(core.IDFromContent(string(buf)))
	if gen == 0 {
		gen = 1
	}
	return gen
}
