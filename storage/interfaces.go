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
	"context"

	"github.com/poiesic/menukb/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// Snapshot is the persisted form of a knowledge base: the entity collection,
// the index-to-entity mapping and the flat vector index. The three artifacts
// are only meaningful together.
type Snapshot struct {
	// Generation is shared by all three artifacts of one save.
	// SaveSnapshot derives it from the content when zero.
	Generation uint64
	Entities   []core.Entity
	Mapping    []int
	Dim        int
	Vectors    []float32 // row-major, len(Mapping)*Dim values
}

// SnapshotRepository persists knowledge-base snapshots under a key prefix.
type SnapshotRepository interface {
	Repository

	// SaveSnapshot writes all three artifacts for prefix in a single
	// transaction. Readers observe either the previous snapshot or the new one.
	SaveSnapshot(ctx context.Context, prefix string, snap *Snapshot) error

	// LoadSnapshot reads the snapshot stored under prefix.
	// Returns ErrCacheMiss when no artifact exists and ErrCacheInconsistent
	// when only some exist, their generations differ or they fail to decode.
	LoadSnapshot(ctx context.Context, prefix string) (*Snapshot, error)

	// DeleteSnapshot removes every artifact stored under prefix.
	DeleteSnapshot(ctx context.Context, prefix string) error
}
