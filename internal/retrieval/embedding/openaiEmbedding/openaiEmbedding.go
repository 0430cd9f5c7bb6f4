package openaiEmbedding

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/customHttpClient"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

// Alternate encoder for deployments pointed at OpenAI or any
// OpenAI-compatible endpoint. Same one-client-per-process rule as the
// Google adapter.

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	api   openai.Client
	model string
}

func newOpenAIEmbedder(modelName string, apikey string, baseURL string) {
	opts := []option.RequestOption{
		option.WithAPIKey(apikey),
		option.WithHTTPClient(customHttpClient.GetPooledClient()),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	embeddingClient = &client{
		api:   openai.NewClient(opts...),
		model: modelName,
	}
	logger.Debug("OpenAI Embedding model name: " + modelName)
	logger.Info("OpenAI Embedding client created")
}

func GetOpenAIEmbeddingClient(modelName string, apikey string, baseURL string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("OpenAI API key is not configured")
			return
		}
		newOpenAIEmbedder(modelName, apikey, baseURL)
	})

	if embeddingClient == nil {
		return nil
	}
	return &client{api: embeddingClient.api, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	// The embeddings endpoint takes the whole array in one request, the
	// caller already batches to a bounded size.
	return c.embed(ctx, chunks)
}

func (c *client) embed(ctx context.Context, inputs []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: inputs},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}
	if len(res.Data) != len(inputs) {
		log.Error("Embedding count mismatch", "want", len(inputs), "got", len(res.Data))
		return nil, errors.New("embedding count mismatch")
	}

	vectors := make([][]float32, len(res.Data))
	for i, d := range res.Data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
