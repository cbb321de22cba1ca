package menukb

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/menukb/ai/mock"
	"github.com/poiesic/menukb/config"
	"github.com/poiesic/menukb/kb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
  "data": {
    "faasos_hsr_layout": {
      "restaurant_name": "Faasos",
      "veg": [{"section": "Wraps", "items": [
        {"name": "Paneer Wrap", "price": "₹100", "description": "Paneer in a soft wrap"},
        {"name": "Masala Fries", "price": 120, "description": "Crispy potato"}
      ]}],
      "non_veg": [{"section": "Wraps", "items": [{"name": "Chicken Wrap", "price": "250"}]}]
    },
    "biryaniblues_btm": {
      "restaurant_name": "Biryani Blues",
      "veg": [{"section": "Desserts", "items": [{"name": "Phirni", "price": "120"}]}]
    }
  }
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "restaurants.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	cfg := config.Default()
	cfg.Catalog.Path = path
	cfg.Cache.Dir = filepath.Join(dir, "kb")
	return cfg
}

func testProvider(answer string) (*mock.MockEmbedder, *mock.MockGenerator) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 8
	return embedder, mock.NewMockGenerator(answer)
}

func TestOpen_BuildsThenLoadsFromCache(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	embedder, generator := testProvider("")
	provider := mock.NewMockProviderWithServices(embedder, generator)

	db, err := Open(ctx, cfg, WithProvider(provider))
	require.NoError(t, err)
	assert.Len(t, db.KnowledgeBase().Items(), 4)
	calls := embedder.CallCount()
	assert.Positive(t, calls)
	require.NoError(t, db.Close())

	// The catalog is no longer needed once the cache exists.
	require.NoError(t, os.Remove(cfg.Catalog.Path))
	db, err = Open(ctx, cfg, WithProvider(provider))
	require.NoError(t, err)
	defer db.Close()
	assert.Len(t, db.KnowledgeBase().Items(), 4)
	assert.Equal(t, calls, embedder.CallCount(), "loading from cache must not embed")
}

func TestOpen_WithoutCatalog(t *testing.T) {
	cfg := testConfig(t)
	embedder, generator := testProvider("")

	_, err := Open(context.Background(), cfg,
		WithProvider(mock.NewMockProviderWithServices(embedder, generator)),
		WithoutCatalog())

	assert.ErrorIs(t, err, kb.ErrNoData)
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Retrieval.K = 0
	_, err := Open(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDatabase_AskAndSearch(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Cache.InMemory = true
	embedder, generator := testProvider("Faasos serves wraps starting at ₹100.")

	var progress strings.Builder
	db, err := Open(ctx, cfg,
		WithProvider(mock.NewMockProviderWithServices(embedder, generator)),
		WithProgress(&progress))
	require.NoError(t, err)
	defer db.Close()

	assert.Contains(t, progress.String(), "4/4")

	session := db.NewSession()
	answer := db.Ask(ctx, session, "What's the price range for Faasos?")
	assert.Equal(t, "Price range for Faasos is ₹100 - ₹250.", answer)

	answer = db.Ask(ctx, session, "anything nice for a rainy evening?")
	assert.Equal(t, "Faasos serves wraps starting at ₹100.", answer)
	assert.Len(t, session.History, 4)

	assert.Len(t, db.Search(ctx, "wrap", 2), 2)
	assert.NotNil(t, db.Orchestrator())
}
