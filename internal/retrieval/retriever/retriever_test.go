package retriever

import (
	"math"
	"testing"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

func candidate(materialID int64, chunkIndex int, text string, vec []float32) segmentModel.SegmentVector {
	return segmentModel.SegmentVector{
		Segment: segmentModel.Segment{
			MaterialID:   materialID,
			CourseID:     materialID,
			DepartmentID: 1,
			ChunkIndex:   chunkIndex,
			Text:         text,
		},
		Embedding: vec,
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical vectors", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite vectors", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal vectors", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero norm is zero not NaN", []float32{0, 0}, []float32{1, 2}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.IsNaN(got) {
				t.Fatal("similarity is NaN")
			}
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	vecs := [][]float32{
		{0.3, -0.7, 0.1}, {5, 5, 5}, {-1, 2, -3}, {0.0001, 0, 1},
	}
	for _, a := range vecs {
		for _, b := range vecs {
			sim := CosineSimilarity(a, b)
			if sim < -1-1e-9 || sim > 1+1e-9 {
				t.Errorf("similarity %f out of [-1,1] for %v x %v", sim, a, b)
			}
		}
	}
}

func TestRank_OrderAndTopK(t *testing.T) {
	query := []float32{1, 0}
	candidates := []segmentModel.SegmentVector{
		candidate(1, 0, "orthogonal", []float32{0, 1}),
		candidate(2, 0, "exact", []float32{2, 0}),
		candidate(3, 0, "close", []float32{1, 0.2}),
	}

	got := Rank(query, candidates, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Text != "exact" || got[1].Text != "close" {
		t.Errorf("wrong order: %q then %q", got[0].Text, got[1].Text)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Error("results not sorted by similarity descending")
	}
	if math.Abs(got[0].Similarity-1) > 1e-6 {
		t.Errorf("exact match similarity = %f, want ~1", got[0].Similarity)
	}
}

func TestRank_DeterministicTieBreak(t *testing.T) {
	query := []float32{1, 0}
	// all identical vectors, ranking must fall back to (chunk_index, material_id)
	candidates := []segmentModel.SegmentVector{
		candidate(9, 1, "m9c1", []float32{1, 0}),
		candidate(4, 0, "m4c0", []float32{1, 0}),
		candidate(2, 1, "m2c1", []float32{1, 0}),
		candidate(7, 0, "m7c0", []float32{1, 0}),
	}

	got := Rank(query, candidates, 4)

	want := []string{"m4c0", "m7c0", "m2c1", "m9c1"}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Text, w)
		}
	}
}

func TestRank_EdgeCases(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		if got := Rank([]float32{1}, nil, 3); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("topK exceeds candidates", func(t *testing.T) {
		got := Rank([]float32{1, 0}, []segmentModel.SegmentVector{
			candidate(1, 0, "only", []float32{1, 0}),
		}, 5)
		if len(got) != 1 {
			t.Errorf("expected 1 result, got %d", len(got))
		}
	})

	t.Run("corrupt zero vector ranks last not panics", func(t *testing.T) {
		got := Rank([]float32{1, 0}, []segmentModel.SegmentVector{
			candidate(1, 0, "zero", []float32{0, 0}),
			candidate(2, 0, "good", []float32{1, 0}),
		}, 2)
		if got[0].Text != "good" || got[1].Similarity != 0 {
			t.Errorf("unexpected ranking: %+v", got)
		}
	})
}
