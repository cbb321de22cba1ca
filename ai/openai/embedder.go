package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/menukb/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrEmptyEmbedding indicates the service answered with no vector for an input.
	ErrEmptyEmbedding = errors.New("service returned an empty embedding")

	// ErrDimensionChanged indicates the service returned vectors of a
	// different length than earlier ones. A menu index needs one dimension.
	ErrDimensionChanged = errors.New("embedding dimension changed")
)

// Embedder implements ai.Embedder for menu text on an OpenAI-compatible
// embedding endpoint. It pins the vector dimension on the first response and
// rejects later responses that disagree.
type Embedder struct {
	embedder embeddings.Embedder
	model    string
	dim      atomic.Int64
	logger   *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(token(config)),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	// Menu descriptions are scraped text with stray line breaks.
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	return &Embedder{
		embedder: embedder,
		model:    config.EmbeddingModel,
		logger:   slog.Default().With("component", "openai-embedder", "model", config.EmbeddingModel),
	}, nil
}

// NewEmbedder creates an embedder for the configured embedding host and model.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Dimension returns the vector length seen so far, or 0 before the first call.
func (e *Embedder) Dimension() int {
	return int(e.dim.Load())
}

// EmbedText embeds a search question.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("query embedding failed", "length", len(text), "err", err)
		return nil, err
	}
	if err := e.check(vector); err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedTexts embeds a batch of menu item inputs, one vector per input in order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	e.logger.Debug("embedding menu batch", "items", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("batch embedding failed", "items", len(texts), "err", err)
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: %d inputs, %d vectors", ErrEmptyEmbedding, len(texts), len(vectors))
	}
	for i, v := range vectors {
		if err := e.check(v); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}
	return vectors, nil
}

// check pins the dimension on first use and verifies it afterwards.
func (e *Embedder) check(v []float32) error {
	if len(v) == 0 {
		return ErrEmptyEmbedding
	}
	n := int64(len(v))
	if e.dim.CompareAndSwap(0, n) {
		e.logger.Debug("embedding dimension pinned", "dim", n)
		return nil
	}
	if want := e.dim.Load(); want != n {
		return fmt.Errorf("%w: want %d, got %d", ErrDimensionChanged, want, n)
	}
	return nil
}

// token returns the bearer token. Local OpenAI-compatible services
// don't require authentication but the client rejects an empty token.
func token(config *ai.Config) string {
	if config.APIKey == "" {
		return "none"
	}
	return config.APIKey
}
