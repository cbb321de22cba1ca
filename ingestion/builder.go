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


package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/normalize"
	"github.com/poiesic/menukb/vectorindex"
)

// Skip reasons recorded in BuildReport.Reasons.
const (
	ReasonInvalidSchema = "invalid_schema"
	ReasonMissingName   = "missing_restaurant_name"
	ReasonMissingItem   = "missing_item_name"
	ReasonDuplicateKey  = "duplicate_key"
)

const (
	defaultBatchSize   = 32
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
	progressInterval   = 100
)

// BuildReport summarizes what a build emitted and skipped.
type BuildReport struct {
	Restaurants    int
	Items          int
	SkippedRecords int
	SkippedItems   int
	Reasons        map[string]int
}

func (r *BuildReport) skip(reason string, record bool) {
	if r.Reasons == nil {
		r.Reasons = make(map[string]int)
	}
	r.Reasons[reason]++
	if record {
		r.SkippedRecords++
	} else {
		r.SkippedItems++
	}
}

// Result is the output of a build.
type Result struct {
	Graph core.Graph
	// Index holds one vector per Graph.Mapping entry. It is nil when the
	// catalog produced no menu items.
	Index  *vectorindex.Index
	Inputs []string
	Report BuildReport
}

// Builder converts a Catalog into an entity graph and vector index.
type Builder struct {
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	progress       io.Writer
	logger         *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the number of concurrent embedding workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many inputs are sent per embedding request.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the attempts and base backoff delay per embedding batch.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Builder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		b.maxAttempts = maxAttempts
		b.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgress reports embedding progress to w.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		b.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger.With("component", "builder")
		return nil
	}
}

// NewBuilder creates a Builder. Call Release when done.
func NewBuilder(embedder ai.Embedder, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder:       embedder,
		pool:           pool,
		batchSize:      defaultBatchSize,
		maxAttempts:    defaultMaxAttempts,
		retryBaseDelay: defaultRetryDelay,
		logger:         slog.Default().With("component", "builder"),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	return b, nil
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Build converts catalog into a graph and embeds every menu item.
func (b *Builder) Build(ctx context.Context, catalog *Catalog) (*Result, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: no catalog", ErrBuild)
	}

	graph, inputs, report := BuildGraph(catalog)
	b.logReport(report)

	result := &Result{Graph: graph, Inputs: inputs, Report: report}
	if len(inputs) == 0 {
		b.logger.Warn("catalog produced no menu items, index is empty")
		return result, nil
	}

	vectors, err := b.EmbedAll(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	index, err := vectorindex.New(len(vectors[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	if err := index.Add(vectors...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	result.Index = index

	b.logger.Info("knowledge graph built",
		"restaurants", report.Restaurants,
		"items", report.Items,
		"dimension", index.Dim())
	return result, nil
}

func (b *Builder) logReport(r BuildReport) {
	if r.SkippedRecords == 0 && r.SkippedItems == 0 {
		return
	}
	reasons := make([]string, 0, len(r.Reasons))
	for reason, n := range r.Reasons {
		reasons = append(reasons, fmt.Sprintf("%s=%d", reason, n))
	}
	sort.Strings(reasons)
	b.logger.Warn("skipped catalog entries",
		"records", r.SkippedRecords,
		"items", r.SkippedItems,
		"reasons", strings.Join(reasons, ","))
}

// BuildGraph converts catalog into entities, the index-to-entity mapping and
// one embedding input per mapped item, in catalog order.
func BuildGraph(catalog *Catalog) (core.Graph, []string, BuildReport) {
	var (
		graph  core.Graph
		inputs []string
		report BuildReport
	)

	for range catalog.Rejected {
		report.skip(ReasonInvalidSchema, true)
	}
	for range catalog.Duplicates {
		report.skip(ReasonDuplicateKey, true)
	}

	keys := make(map[string]bool, len(catalog.Entries))
	for _, entry := range catalog.Entries {
		if keys[entry.Key] {
			report.skip(ReasonDuplicateKey, true)
			continue
		}
		keys[entry.Key] = true
		keyName, location := ParseKey(entry.Key)
		name := keyName
		if entry.Record.RestaurantName != nil && strings.TrimSpace(*entry.Record.RestaurantName) != "" {
			name = *entry.Record.RestaurantName
		}
		name = strings.TrimSpace(name)
		if name == "" {
			report.skip(ReasonMissingName, true)
			continue
		}

		restaurant := core.Restaurant{
			ID:             entry.Key,
			Name:           name,
			NormalizedName: normalize.Name(name),
			Location:       location,
			SourceURL:      entry.Record.URL,
		}
		graph.Entities = append(graph.Entities, core.RestaurantEntity(restaurant))
		report.Restaurants++

		lists := []struct {
			sections []MenuSection
			dietary  core.Dietary
		}{
			{entry.Record.Veg, core.DietaryVeg},
			{entry.Record.NonVeg, core.DietaryNonVeg},
		}
		for _, list := range lists {
			for _, section := range list.sections {
				for _, raw := range section.Items {
					itemName := strings.TrimSpace(raw.Name)
					if itemName == "" {
						report.skip(ReasonMissingItem, false)
						continue
					}
					item := core.MenuItem{
						ID:                       core.MenuItemID(restaurant.ID, itemName),
						RestaurantID:             restaurant.ID,
						RestaurantName:           restaurant.Name,
						NormalizedRestaurantName: restaurant.NormalizedName,
						Section:                  section.Section,
						Name:                     itemName,
						Price:                    normalize.Price(string(raw.Price)),
						Description:              normalize.Clean(raw.Description),
						Dietary:                  list.dietary,
						Location:                 restaurant.Location,
					}
					graph.Entities = append(graph.Entities, core.MenuItemEntity(item))
					graph.Mapping = append(graph.Mapping, len(graph.Entities)-1)
					inputs = append(inputs, EmbeddingInput(&item))
					report.Items++
				}
			}
		}
	}
	return graph, inputs, report
}

// EmbeddingInput composes the text embedded for item so that restaurant,
// section, location and dietary tag are all reachable by similarity search.
func EmbeddingInput(item *core.MenuItem) string {
	return fmt.Sprintf("%s %s %s %s Location: %s Dietary: %s",
		item.RestaurantName, item.Section, item.Name, item.Description, item.Location, item.Dietary)
}
