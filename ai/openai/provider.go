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


package openai

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/poiesic/menukb/ai"
)

// ErrProviderClosed is returned by Close on a provider that was already closed.
var ErrProviderClosed = errors.New("provider already closed")

// Provider bundles the menu embedder and the answer generator. The two may
// point at different hosts: embeddings usually run locally while answers
// come from a hosted chat model.
type Provider struct {
	embedder  *Embedder
	generator *Generator
	logger    *slog.Logger

	closeOnce sync.Once
}

// NewProvider validates config and builds both clients.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-provider")
	logger.Debug("provider ready",
		"embedding_host", config.EmbeddingHost,
		"embedding_model", config.EmbeddingModel,
		"generator_host", config.GeneratorHost,
		"generator_model", config.GeneratorModel)

	return &Provider{
		embedder:  embedder,
		generator: generator,
		logger:    logger,
	}, nil
}

// Embedder returns the menu text embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the answer generator.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases the provider. The HTTP clients hold no resources, so this
// only guards against double close.
func (p *Provider) Close() error {
	err := ErrProviderClosed
	p.closeOnce.Do(func() {
		err = nil
		p.logger.Debug("provider closed", "embedding_dim", p.embedder.Dimension())
	})
	return err
}
