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


// Package menukb answers questions about restaurant menus. Database wires
// the persisted knowledge base, the AI provider and the retrieval
// orchestrator behind a small API.
package menukb

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/menukb/ai"
	"github.com/poiesic/menukb/ai/openai"
	"github.com/poiesic/menukb/config"
	"github.com/poiesic/menukb/core"
	"github.com/poiesic/menukb/ingestion"
	"github.com/poiesic/menukb/kb"
	"github.com/poiesic/menukb/retrieval"
	"github.com/poiesic/menukb/storage"
	"github.com/poiesic/menukb/storage/badger"
)

type Database struct {
	backend      *badger.Backend
	repo         storage.SnapshotRepository
	provider     ai.AIProvider
	ownsProvider bool
	kb           *kb.KnowledgeBase
	orchestrator *retrieval.Orchestrator
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	provider  ai.AIProvider
	rebuild   bool
	noCatalog bool
	progress  io.Writer
	monitor   retrieval.Monitor
	logger    *slog.Logger
}

// WithProvider uses provider instead of an OpenAI-compatible one built from
// the config. The caller keeps ownership and must close it.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithRebuild ignores any cached knowledge base and rebuilds from the
// catalog.
func WithRebuild() DatabaseOption {
	return func(o *databaseOptions) {
		o.rebuild = true
	}
}

// WithoutCatalog opens the cached knowledge base only. Open then fails with
// kb.ErrNoData when nothing is cached.
func WithoutCatalog() DatabaseOption {
	return func(o *databaseOptions) {
		o.noCatalog = true
	}
}

// WithProgress reports embedding progress to w during a build.
func WithProgress(w io.Writer) DatabaseOption {
	return func(o *databaseOptions) {
		o.progress = w
	}
}

// WithMonitor observes how each question is answered.
func WithMonitor(m retrieval.Monitor) DatabaseOption {
	return func(o *databaseOptions) {
		o.monitor = m
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// Open loads or builds the knowledge base described by cfg. The returned
// Database is fully initialized; nothing is loaded lazily.
func Open(ctx context.Context, cfg *config.Config, opts ...DatabaseOption) (*Database, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	backend, err := badger.OpenBackend(cfg.Cache.Dir, cfg.Cache.InMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	db := &Database{
		backend:  backend,
		repo:     repo,
		provider: options.provider,
		logger:   logger.With("component", "database"),
	}
	if db.provider == nil {
		provider, err := openai.NewProvider(cfg.AIConfig())
		if err != nil {
			db.Close()
			return nil, err
		}
		db.provider = provider
		db.ownsProvider = true
	}

	builderOpts := []ingestion.Option{
		ingestion.WithPoolSize(cfg.Ingestion.PoolSize),
		ingestion.WithBatchSize(cfg.Ingestion.BatchSize),
		ingestion.WithRetry(cfg.Ingestion.MaxAttempts, cfg.Ingestion.RetryDelay),
	}
	if options.progress != nil {
		builderOpts = append(builderOpts, ingestion.WithProgress(options.progress))
	}
	kbOpts := []kb.Option{kb.WithLogger(logger), kb.WithBuilderOptions(builderOpts...)}
	if options.rebuild {
		kbOpts = append(kbOpts, kb.WithRebuild())
	}

	var source ingestion.Source
	if !options.noCatalog && cfg.Catalog.Path != "" {
		source = ingestion.FileSource(cfg.Catalog.Path)
	}

	knowledge, err := kb.Open(ctx, repo, cfg.Cache.Prefix, source, db.provider.Embedder(), kbOpts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	db.kb = knowledge

	orchestrator, err := retrieval.NewOrchestrator(knowledge,
		retrieval.WithGenerator(db.provider.Generator()),
		retrieval.WithLogger(logger),
		retrieval.WithMonitor(options.monitor),
		retrieval.WithK(cfg.Retrieval.K),
		retrieval.WithMenuCap(cfg.Retrieval.MenuCap),
		retrieval.WithPerSection(cfg.Retrieval.PerSection),
		retrieval.WithMinAnswerLength(cfg.Retrieval.MinAnswerLength),
	)
	if err != nil {
		db.Close()
		return nil, err
	}
	db.orchestrator = orchestrator
	return db, nil
}

func (db *Database) Close() error {
	if db.ownsProvider && db.provider != nil {
		if err := db.provider.Close(); err != nil {
			db.logger.Error("error closing AI provider", "err", err)
		}
	}

	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing snapshot repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Ask answers question within session, which may be nil.
func (db *Database) Ask(ctx context.Context, session *retrieval.Session, question string) string {
	return db.orchestrator.Ask(ctx, session, question).Text
}

// Search returns the k menu items closest to query.
func (db *Database) Search(ctx context.Context, query string, k int) []core.MenuItem {
	return db.kb.Search(ctx, query, k, "")
}

func (db *Database) KnowledgeBase() *kb.KnowledgeBase {
	return db.kb
}

func (db *Database) Orchestrator() *retrieval.Orchestrator {
	return db.orchestrator
}

func (db *Database) NewSession() *retrieval.Session {
	return retrieval.NewSession()
}
