package openai

import (
	"context"
	"log/slog"

	"github.com/casenav-io/casenav/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder against any OpenAI-compatible embedding
// endpoint (Ollama, LocalAI, vLLM, or OpenAI itself).
type Embedder struct {
	embedder embeddings.Embedder
	model    string
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible services ignore the token but the client
	// requires one, so "none" stands in.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		model:    config.EmbeddingModel,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates an embedder from the given configuration. Construction
// failure means the endpoint is misconfigured; there is no fallback, the
// caller must treat it as fatal.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedding service returned no vector", "model", e.model)
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple texts in one request.
// Vectors come back in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	e.logger.Debug("requesting embeddings", "model", e.model, "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding request failed", "model", e.model, "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
