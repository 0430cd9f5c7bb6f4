package googleEmbedding

import (
	"context"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campuslms/RetrievalAPI/internal/adapter/utils"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))

	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit! ", "error", err)
			return true
		}
	}
	return false
}

// largeBatchEmbedding runs oversized ingestions through the offline batch
// API instead of holding an inference slot for the whole document.
func (c *client) largeBatchEmbedding(ctx context.Context, chunks []string, log *logger_i.Logger) ([][]float32, error) {
	source := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(chunks)}
	batchJobName := utils.GetNewUUID()

	log = log.With("batchJobName", batchJobName, "chunks", len(chunks))
	conf := genai.CreateEmbeddingsBatchJobConfig{DisplayName: batchJobName}
	_, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source, &conf)
	if err != nil {
		log.Error("Error getting batch Embeddings from Google", "error", err.Error())
		return nil, err
	}

	answer, err := c.pollForAnswer(ctx, batchJobName, log)
	if err != nil {
		return nil, err
	}
	resultVectors, downErrors := downloadAnswerFromClient(answer, log)
	if downErrors != nil {
		log.Error("Error downloading answers from Google Embedding client: ", "errors", downErrors)
	}

	return resultVectors, nil
}

func getInlinedBatchRequests(chunks []string) *genai.EmbedContentBatch {
	conf := genai.EmbedContentConfig{OutputDimensionality: &dimension}
	embedContentBatch := genai.EmbedContentBatch{
		Config:   &conf,
		Contents: getContent(chunks),
	}
	return &embedContentBatch
}

func (c *client) pollForAnswer(ctx context.Context, batchJobName string, log *logger_i.Logger) (*genai.BatchJob, error) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	log.Debug("pollForAnswer")
	for {
		select {
		case <-ctx.Done():
			log.Error("pollForAnswer cancelled", "error:", ctx.Err())
			return nil, ctx.Err()

		case <-ticker.C:
			bJob, err := c.genAi.Batches.Get(ctx, batchJobName, nil)
			if err != nil {
				log.Error("Error getting batch job:", "error", err)
				continue
			}

			switch bJob.State {
			case "JOB_STATE_SUCCEEDED":
				log.Debug("batch job succeeded")
				return bJob, nil

			case "JOB_STATE_FAILED":
				log.Error("batch job failed :", "JOB_STATE_FAILED", bJob.Error.Message)
			case "JOB_STATE_CANCELLED", "JOB_STATE_EXPIRED", "JOB_STATE_PARTIALLY_SUCCEEDED":
				log.Error("batch job failed :", "Premature ending", bJob.State)
				//all other states we wait for the context to expire or the job to end
			}
		}
	}
}

func downloadAnswerFromClient(answer *genai.BatchJob, log *logger_i.Logger) ([][]float32, error) {
	res := answer.Dest.InlinedEmbedContentResponses
	if len(res) == 0 {
		return [][]float32{}, nil
	}
	var results [][]float32

	for _, r := range res {
		var val []float32
		if r == nil || r.Error != nil || r.Response == nil || r.Response.Embedding == nil {
			log.Error("Error with a particular result in batch embedding", "error", r)
			val = nil
		} else {
			val = r.Response.Embedding.Values
		}
		results = append(results, val)
	}
	return results, nil
}
