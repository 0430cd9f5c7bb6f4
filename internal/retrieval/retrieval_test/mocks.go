package retrieval_test

import (
	"context"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

// StubVector maps text to a deterministic direction in 32 dimensions so
// identical text always embeds to an identical vector. Good enough for
// ranking assertions without a live encoder.
func StubVector(text string) []float32 {
	vec := make([]float32, 32)
	for i := 0; i < len(text); i++ {
		vec[int(text[i])%32]++
	}
	return vec
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return StubVector(query), nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		vectors[i] = StubVector(c)
	}
	return vectors, nil
}

// MockStore implements store.EmbeddingStore
type MockStore struct {
	OnReplace          func(ctx context.Context, materialID int64, segments []segmentModel.SegmentVector) error
	OnScan             func(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error)
	OnDeleteByMaterial func(ctx context.Context, materialID int64) error
}

func (m *MockStore) Replace(ctx context.Context, materialID int64, segments []segmentModel.SegmentVector) error {
	if m.OnReplace != nil {
		return m.OnReplace(ctx, materialID, segments)
	}
	return nil
}

func (m *MockStore) Scan(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error) {
	if m.OnScan != nil {
		return m.OnScan(ctx, scope)
	}
	return nil, nil
}

func (m *MockStore) DeleteByMaterial(ctx context.Context, materialID int64) error {
	if m.OnDeleteByMaterial != nil {
		return m.OnDeleteByMaterial(ctx, materialID)
	}
	return nil
}
