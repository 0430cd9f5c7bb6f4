package ingest

import (
	"context"
	"fmt"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
)

// BatchEmbed runs chunks through the encoder in bounded batches and returns
// one vector per chunk, in chunk order. All batches must succeed before any
// segment reaches the store.
func BatchEmbed(ctx context.Context, chunks []string, embedder embedding.Embedder) ([][]float32, error) {
	batchSize := config.EmbeddingBatchSize
	isHugeDataSet := len(chunks) > 1000000 //offline batch path for absurd uploads

	var vectors [][]float32
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		batchVectors, err := embedder.BatchEmbedding(ctx, currentBatch, isHugeDataSet)
		if err != nil {
			return nil, fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(batchVectors) != len(currentBatch) {
			return nil, fmt.Errorf("encoder returned %d vectors for %d chunks", len(batchVectors), len(currentBatch))
		}
		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}

// PrepareSegments pairs chunks with their vectors and stamps the ownership
// scope. chunk_index is the position within this ingestion, which is what
// lets a join over chunk_index rebuild the document text.
func PrepareSegments(payload jobModel.JobPayload, chunks []string, vectors [][]float32) []segmentModel.SegmentVector {
	batch := make([]segmentModel.SegmentVector, len(chunks))
	for i, text := range chunks {
		batch[i] = segmentModel.SegmentVector{
			Segment: segmentModel.Segment{
				MaterialID:   payload.MaterialID,
				CourseID:     payload.CourseID,
				DepartmentID: payload.DepartmentID,
				ChunkIndex:   i,
				Text:         text,
			},
			Embedding: vectors[i],
		}
	}
	return batch
}
