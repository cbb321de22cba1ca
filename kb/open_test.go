package kb

import (
	"context"
	"errors"
	"testing"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/ingestion"
	"github.com/poiesic/menukb/storage"
	"github.com/poiesic/menukb/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "menukb"

func newTestRepo(t *testing.T) (storage.SnapshotRepository, *badger.Backend) {
	t.Helper()
	repo, backend, err := badger.NewMemorySnapshotRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo, backend
}

// countingSource returns testCatalog and records how often it was called.
func countingSource(calls *int) ingestion.Source {
	return func() (*ingestion.Catalog, error) {
		*calls++
		return testCatalog(), nil
	}
}

func TestOpen_BuildThenLoad(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	calls := 0
	built, err := Open(ctx, repo, testPrefix, countingSource(&calls), testEmbedder())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	loaded, err := Open(ctx, repo, testPrefix, nil, testEmbedder())
	require.NoError(t, err)
	assert.Equal(t, built.Graph(), loaded.Graph())
	assert.Equal(t, built.Search(ctx, "paneer", 4, ""), loaded.Search(ctx, "paneer", 4, ""))

	again, err := Open(ctx, repo, testPrefix, countingSource(&calls), testEmbedder())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "valid cache must not trigger a rebuild")
	assert.Equal(t, built.Graph(), again.Graph())
}

func TestOpen_Rebuild(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	calls := 0
	_, err := Open(ctx, repo, testPrefix, countingSource(&calls), testEmbedder())
	require.NoError(t, err)
	_, err = Open(ctx, repo, testPrefix, countingSource(&calls), testEmbedder(), WithRebuild())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestOpen_NoData(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := Open(context.Background(), repo, testPrefix, nil, testEmbedder())
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Open(context.Background(), nil, testPrefix, nil, testEmbedder())
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestOpen_PartialCache(t *testing.T) {
	ctx := context.Background()
	repo, backend := newTestRepo(t)

	_, err := Open(ctx, repo, testPrefix, countingSource(new(int)), testEmbedder())
	require.NoError(t, err)

	err = backend.WithTx(func(tx *badgerdb.Txn) error {
		if err := tx.Delete([]byte(testPrefix + ":index")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	_, err = Open(ctx, repo, testPrefix, nil, testEmbedder())
	assert.ErrorIs(t, err, ErrCacheInconsistent)

	calls := 0
	rebuilt, err := Open(ctx, repo, testPrefix, countingSource(&calls), testEmbedder())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 7, rebuilt.Index().Len())

	_, err = repo.LoadSnapshot(ctx, testPrefix)
	assert.NoError(t, err, "rebuild must publish a complete snapshot")
}

func TestOpen_GraphMismatch(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	// Storage-consistent, but the only item has no owning restaurant.
	orphan := core.MenuItemEntity(core.MenuItem{
		ID:                       core.MenuItemID("ghost_x", "Soup"),
		RestaurantID:             "ghost_x",
		RestaurantName:           "Ghost",
		NormalizedRestaurantName: "ghost",
		Name:                     "Soup",
		Dietary:                  core.DietaryVeg,
	})
	require.NoError(t, repo.SaveSnapshot(ctx, testPrefix, &storage.Snapshot{
		Entities: []core.Entity{orphan},
		Mapping:  []int{0},
		Dim:      2,
		Vectors:  []float32{1, 2},
	}))

	_, err := Open(ctx, repo, testPrefix, nil, testEmbedder())
	assert.ErrorIs(t, err, ErrCacheInconsistent)

	kb, err := Open(ctx, repo, testPrefix, countingSource(new(int)), testEmbedder())
	require.NoError(t, err)
	assert.True(t, kb.HasRestaurant("Faasos"))
}

func TestOpen_SourceError(t *testing.T) {
	repo, _ := newTestRepo(t)
	failing := func() (*ingestion.Catalog, error) {
		return nil, ingestion.ErrBuild
	}
	_, err := Open(context.Background(), repo, testPrefix, failing, testEmbedder())
	assert.True(t, errors.Is(err, ingestion.ErrBuild))

	_, err = repo.LoadSnapshot(context.Background(), testPrefix)
	assert.ErrorIs(t, err, storage.ErrCacheMiss, "failed build must not leave a snapshot")
}
