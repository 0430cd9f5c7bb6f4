package retriever

import (
	"math"
	"sort"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

type scored struct {
	segmentModel.RankedSegment
	chunkIndex int
}

// Rank scores every candidate against the query vector by cosine similarity
// and returns the topK best. Brute force on purpose: per-institution corpora
// stay in the tens of thousands of segments, so an exact O(N*D) scan beats
// maintaining an index. Swapping in an ANN index later only has to honor
// this signature.
func Rank(query []float32, candidates []segmentModel.SegmentVector, topK int) []segmentModel.RankedSegment {
	if topK <= 0 || len(candidates) == 0 {
		return nil
	}

	hits := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		hits = append(hits, scored{
			RankedSegment: segmentModel.RankedSegment{
				Text:       c.Text,
				Similarity: CosineSimilarity(query, c.Embedding),
				MaterialID: c.MaterialID,
				CourseID:   c.CourseID,
			},
			chunkIndex: c.ChunkIndex,
		})
	}

	// similarity desc; ties resolved by (chunk_index, material_id) asc so
	// the output is deterministic
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		if hits[i].chunkIndex != hits[j].chunkIndex {
			return hits[i].chunkIndex < hits[j].chunkIndex
		}
		return hits[i].MaterialID < hits[j].MaterialID
	})

	if topK > len(hits) {
		topK = len(hits)
	}
	results := make([]segmentModel.RankedSegment, topK)
	for i := range results {
		results[i] = hits[i].RankedSegment
	}
	return results
}

// CosineSimilarity is dot(a,b) / (|a|*|b|). A zero-norm vector scores 0 -
// a corrupt record must not poison the whole ranking with NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
