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


package kb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/ingestion"
	"github.com/poiesic/menukb/storage"
	"github.com/poiesic/menukb/vectorindex"
)

// KnowledgeBase answers structured and semantic lookups over a built
// entity graph.
type KnowledgeBase struct {
	graph    core.Graph
	index    *vectorindex.Index
	embedder ai.Embedder

	// normalized restaurant name -> entity positions
	restaurants map[string][]int
	items       []int

	glutenKeywords []string
	builderOpts    []ingestion.Option
	rebuild        bool
	base           *slog.Logger
	logger         *slog.Logger
}

// Option configures a KnowledgeBase.
type Option func(*KnowledgeBase) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(kb *KnowledgeBase) error {
		if logger == nil {
			logger = slog.Default()
		}
		kb.base = logger
		kb.logger = logger.With("component", "kb")
		return nil
	}
}

// WithGlutenKeywords replaces the denylist used by GlutenFreeItems.
func WithGlutenKeywords(keywords ...string) Option {
	return func(kb *KnowledgeBase) error {
		kb.glutenKeywords = lowerAll(keywords)
		return nil
	}
}

// WithBuilderOptions passes options to the ingestion builder used by
// Build and Open.
func WithBuilderOptions(opts ...ingestion.Option) Option {
	return func(kb *KnowledgeBase) error {
		kb.builderOpts = append(kb.builderOpts, opts...)
		return nil
	}
}

// WithRebuild makes Open ignore any cached snapshot and rebuild from the
// catalog.
func WithRebuild() Option {
	return func(kb *KnowledgeBase) error {
		kb.rebuild = true
		return nil
	}
}

func configure(embedder ai.Embedder, opts []Option) (*KnowledgeBase, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	kb := &KnowledgeBase{
		embedder:       embedder,
		glutenKeywords: DefaultGlutenKeywords(),
		base:           slog.Default(),
		logger:         slog.Default().With("component", "kb"),
	}
	for _, opt := range opts {
		if err := opt(kb); err != nil {
			return nil, err
		}
	}
	return kb, nil
}

// New wraps an already built graph and index. index may be nil only when
// the graph has no mapped items.
func New(graph core.Graph, index *vectorindex.Index, embedder ai.Embedder, opts ...Option) (*KnowledgeBase, error) {
	kb, err := configure(embedder, opts)
	if err != nil {
		return nil, err
	}
	if err := kb.attach(graph, index); err != nil {
		return nil, err
	}
	return kb, nil
}

// Build runs the ingestion builder over catalog and wraps the result.
func Build(ctx context.Context, catalog *ingestion.Catalog, embedder ai.Embedder, opts ...Option) (*KnowledgeBase, error) {
	kb, err := configure(embedder, opts)
	if err != nil {
		return nil, err
	}
	if err := kb.build(ctx, catalog); err != nil {
		return nil, err
	}
	return kb, nil
}

// FromSnapshot restores a knowledge base from its persisted form.
func FromSnapshot(snap *storage.Snapshot, embedder ai.Embedder, opts ...Option) (*KnowledgeBase, error) {
	kb, err := configure(embedder, opts)
	if err != nil {
		return nil, err
	}
	if err := kb.attachSnapshot(snap); err != nil {
		return nil, err
	}
	return kb, nil
}

// Open loads the snapshot stored under prefix, or builds one from source and
// saves it. An inconsistent snapshot is rebuilt; when source is nil that is
// reported as ErrCacheInconsistent. With neither a snapshot nor a source Open
// returns ErrNoData.
func Open(
	ctx context.Context,
	repo storage.SnapshotRepository,
	prefix string,
	source ingestion.Source,
	embedder ai.Embedder,
	opts ...Option,
) (*KnowledgeBase, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	kb, err := configure(embedder, opts)
	if err != nil {
		return nil, err
	}

	inconsistent := false
	if !kb.rebuild {
		snap, err := repo.LoadSnapshot(ctx, prefix)
		switch {
		case err == nil:
			attachErr := kb.attachSnapshot(snap)
			if attachErr == nil {
				kb.logger.Info("knowledge base loaded from cache",
					"prefix", prefix,
					"generation", snap.Generation,
					"entities", len(kb.graph.Entities),
					"vectors", len(kb.graph.Mapping))
				return kb, nil
			}
			kb.logger.Warn("cached knowledge base is inconsistent, rebuilding", "prefix", prefix, "err", attachErr)
			inconsistent = true
		case errors.Is(err, storage.ErrCacheMiss):
			kb.logger.Info("no cached knowledge base", "prefix", prefix)
		case errors.Is(err, storage.ErrCacheInconsistent):
			kb.logger.Warn("cached knowledge base is inconsistent, rebuilding", "prefix", prefix, "err", err)
			inconsistent = true
		default:
			return nil, err
		}
	}

	if source == nil {
		if inconsistent {
			return nil, fmt.Errorf("%w: no catalog to rebuild %q from", ErrCacheInconsistent, prefix)
		}
		return nil, ErrNoData
	}

	catalog, err := source()
	if err != nil {
		return nil, err
	}
	if err := kb.build(ctx, catalog); err != nil {
		return nil, err
	}
	if err := repo.SaveSnapshot(ctx, prefix, kb.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save knowledge base: %w", err)
	}
	return kb, nil
}

func (kb *KnowledgeBase) build(ctx context.Context, catalog *ingestion.Catalog) error {
	builderOpts := append([]ingestion.Option{ingestion.WithLogger(kb.base)}, kb.builderOpts...)
	builder, err := ingestion.NewBuilder(kb.embedder, builderOpts...)
	if err != nil {
		return err
	}
	defer builder.Release()

	result, err := builder.Build(ctx, catalog)
	if err != nil {
		return err
	}
	return kb.attach(result.Graph, result.Index)
}

func (kb *KnowledgeBase) attachSnapshot(snap *storage.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrCacheInconsistent)
	}
	var index *vectorindex.Index
	if len(snap.Mapping) > 0 || len(snap.Vectors) > 0 {
		var err error
		index, err = vectorindex.FromVectors(snap.Dim, snap.Vectors)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCacheInconsistent, err)
		}
	}
	return kb.attach(core.Graph{Entities: snap.Entities, Mapping: snap.Mapping}, index)
}

// attach validates graph against index and installs both.
func (kb *KnowledgeBase) attach(graph core.Graph, index *vectorindex.Index) error {
	if err := core.ValidateGraph(&graph); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheInconsistent, err)
	}
	indexed := 0
	if index != nil {
		indexed = index.Len()
	}
	if indexed != len(graph.Mapping) {
		return fmt.Errorf("%w: index holds %d vectors for %d mapped items", ErrCacheInconsistent, indexed, len(graph.Mapping))
	}

	restaurants := make(map[string][]int)
	var items []int
	for pos, e := range graph.Entities {
		switch e.Kind {
		case core.EntityRestaurant:
			restaurants[e.Restaurant.NormalizedName] = append(restaurants[e.Restaurant.NormalizedName], pos)
		case core.EntityMenuItem:
			items = append(items, pos)
		}
	}

	kb.graph = graph
	kb.index = index
	kb.restaurants = restaurants
	kb.items = items
	return nil
}

// Snapshot returns the persisted form of kb.
func (kb *KnowledgeBase) Snapshot() *storage.Snapshot {
	snap := &storage.Snapshot{
		Entities: kb.graph.Entities,
		Mapping:  kb.graph.Mapping,
	}
	if kb.index != nil {
		snap.Dim = kb.index.Dim()
		snap.Vectors = kb.index.Flat()
	}
	return snap
}

// Graph returns the entity graph. Callers must not modify it.
func (kb *KnowledgeBase) Graph() core.Graph {
	return kb.graph
}

// Index returns the vector index, or nil when nothing was embedded.
func (kb *KnowledgeBase) Index() *vectorindex.Index {
	return kb.index
}
