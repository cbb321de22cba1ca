package kb

import (
	"errors"

	"github.com/poiesic/menukb/storage"
)

var (
	// ErrNoData is returned by Open when there is neither a cached snapshot
	// nor a catalog to build from.
	ErrNoData = errors.New("no cached knowledge base and no catalog to build from")

	// ErrCacheInconsistent reports a graph, mapping and index that do not
	// agree. It is the same value as storage.ErrCacheInconsistent.
	ErrCacheInconsistent = storage.ErrCacheInconsistent

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRepositoryRequired is returned by Open when no repository is provided.
	ErrRepositoryRequired = errors.New("snapshot repository required")
)
