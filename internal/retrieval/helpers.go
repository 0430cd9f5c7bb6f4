package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/metrics"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/retriever"
)

func traceKey() any {
	return config.TRACE_ID_KEY
}

func (s *service) executeEmbeddingStep(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, text)
}

func (s *service) executeScanStep(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("store_scan", time.Since(start)) }()

	return s.embedStore.Scan(ctx, scope)
}

func (s *service) executeRankingStep(queryVector []float32, candidates []segmentModel.SegmentVector, topK int) []segmentModel.RankedSegment {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("similarity_ranking", time.Since(start)) }()

	if topK <= 0 {
		topK = config.DefaultTopK
	}
	if topK > config.MaxTopK {
		topK = config.MaxTopK
	}
	return retriever.Rank(queryVector, candidates, topK)
}

// ContextBlock formats ranked segments into the grounding block the
// generation collaborator prepends to its prompt. Empty results format to
// an empty string so the caller can proceed without material context.
func ContextBlock(results []segmentModel.RankedSegment) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Reference from course materials:\n\n")
	for i, r := range results {
		snippet := r.Text
		if len(snippet) > config.ContextSnippetChars {
			snippet = snippet[:config.ContextSnippetChars] + "..."
		}
		b.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, snippet))
	}
	return b.String()
}
