package badger

import "github.com/poiesic/menukb/storage"

// NewMemorySnapshotRepository creates an in-memory snapshot repository for testing.
// Caller must close both the repository and the backend when done.
func NewMemorySnapshotRepository() (storage.SnapshotRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}

	repo, err := NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	return repo, backend, nil
}
