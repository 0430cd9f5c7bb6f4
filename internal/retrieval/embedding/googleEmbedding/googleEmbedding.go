package googleEmbedding

import (
	"context"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Debug("Google Embedding model name: " + modelName)
		logger.Info("Google Embedding client created")
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

// GetGoogleEmbeddingClient returns the process-wide encoder handle, or nil
// when the client cannot be initialized - the caller treats nil as fatal at
// startup since a store without its encoder can neither ingest nor query.
func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	text := genai.Text(query)
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, text, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting query Embedding from Google", "error", err.Error())
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isLargeDataSet bool) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if !isLargeDataSet {
		res, err := c.doCall(ctx, getContent(chunks))
		if err != nil || res == nil {
			if doRetry(err, logger) {
				time.Sleep(5 * time.Second)
				log.Debug("Retrying in 5 seconds")

				res, err = c.doCall(ctx, getContent(chunks))
			}
			if err != nil {
				log.Error("Error getting Embeddings from Google", "error", err)
				return nil, err
			}
		}
		var embeddingResults [][]float32
		for _, r := range res.Embeddings {
			embeddingResults = append(embeddingResults, r.Values)
		}

		return embeddingResults, nil
	}

	return c.largeBatchEmbedding(ctx, chunks, log)
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	return result, err
}
