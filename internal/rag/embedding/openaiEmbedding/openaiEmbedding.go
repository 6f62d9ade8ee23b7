package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/DocRAG/internal/config"
	"github.com/akolanti/DocRAG/internal/rag/embedding"
	"github.com/akolanti/DocRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var dimension = int64(config.EmbeddingOutputDimensionality)

type client struct {
	openAi openai.Client
	model  string
	logger *logger_i.Logger
}

// NewClient builds an embedder on the OpenAI embeddings API with the
// index's fixed output dimensionality.
func NewClient(apiKey string, modelName string) (embedding.Embedder, error) {
	if apiKey == "" {
		return nil, errors.New("missing OpenAI API key")
	}
	if modelName == "" {
		modelName = config.OpenAIEmbeddingModel
	}
	return &client{
		openAi: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  modelName,
		logger: logger_i.NewLogger("openai_embedding"),
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	result, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(query)},
		Dimensions: openai.Int(dimension),
	})
	if err != nil {
		c.logger.Error("Error getting embedding from OpenAI", "error", err)
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return toFloat32(result.Data[0].Embedding), nil
}

// BatchEmbedding embeds all texts in one provider call. The response is
// re-ordered by the provider-reported index so the vector-to-chunk
// mapping is preserved even if the API returns data out of order.
func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Dimensions: openai.Int(dimension),
	})
	if err != nil {
		c.logger.Error("Error getting batch embeddings from OpenAI", "error", err)
		return nil, err
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("mismatch: sent %d texts, got %d embeddings", len(texts), len(result.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range result.Data {
		if item.Index < 0 || item.Index >= int64(len(texts)) {
			return nil, fmt.Errorf("embedding index %d out of range", item.Index)
		}
		vectors[item.Index] = toFloat32(item.Embedding)
	}
	return vectors, nil
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}
