package embedding

import "context"

// Embedder is the pinned encoder for the lifetime of the store. One
// implementation is constructed at process start; vectors produced by
// different encoders are never comparable, so the choice cannot change
// while the store holds data.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error)
}
