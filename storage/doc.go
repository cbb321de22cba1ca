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


// Package storage provides the storage abstraction layer for menukb.
//
// This package defines repository interfaces that decouple snapshot
// persistence from the knowledge base. The BadgerDB implementation lives in
// storage/badger.
//
// # Snapshots
//
// A knowledge base is persisted as three artifacts stored under a shared
// key prefix:
//
//	<prefix>:entities   entity collection
//	<prefix>:mapping    vector position -> entity position
//	<prefix>:index      flat float32 vectors
//
// Every value starts with the generation of the save that wrote it. A
// snapshot is valid only when all three artifacts are present and carry the
// same generation. All three are written in one transaction.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewSnapshotRepository(backend)
//	snap, err := repo.LoadSnapshot(ctx, "menukb")
//	if errors.Is(err, storage.ErrCacheMiss) {
//	    // build and save
//	}
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemorySnapshotRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
