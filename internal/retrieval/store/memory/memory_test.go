package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

func batchFor(materialID, departmentID int64, n int) []segmentModel.SegmentVector {
	batch := make([]segmentModel.SegmentVector, n)
	for i := range batch {
		batch[i] = segmentModel.SegmentVector{
			Segment: segmentModel.Segment{
				MaterialID:   materialID,
				CourseID:     materialID * 10,
				DepartmentID: departmentID,
				ChunkIndex:   i,
				Text:         fmt.Sprintf("material %d chunk %d", materialID, i),
			},
			Embedding: []float32{float32(materialID), float32(i)},
		}
	}
	return batch
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := InitInMemoryStore()

	t.Run("Replace and Scan roundtrip", func(t *testing.T) {
		if err := s.Replace(ctx, 1, batchFor(1, 100, 3)); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		got, err := s.Scan(ctx, segmentModel.Scope{})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 records, got %d", len(got))
		}
		for i, rec := range got {
			if rec.ChunkIndex != i {
				t.Errorf("insertion order broken at %d: chunk_index %d", i, rec.ChunkIndex)
			}
		}
		if got[1].Embedding[1] != 1 {
			t.Errorf("vector did not round-trip: %v", got[1].Embedding)
		}
	})

	t.Run("Empty batch rejected", func(t *testing.T) {
		if err := s.Replace(ctx, 1, nil); err == nil {
			t.Error("expected error for empty batch")
		}
	})

	t.Run("Scope filters by department", func(t *testing.T) {
		if err := s.Replace(ctx, 2, batchFor(2, 200, 2)); err != nil {
			t.Fatal(err)
		}

		scoped, err := s.Scan(ctx, segmentModel.Scope{DepartmentID: 200})
		if err != nil {
			t.Fatal(err)
		}
		for _, rec := range scoped {
			if rec.DepartmentID != 200 {
				t.Errorf("scope leak: got department %d", rec.DepartmentID)
			}
		}
		if len(scoped) != 2 {
			t.Errorf("expected 2 scoped records, got %d", len(scoped))
		}
	})

	t.Run("DeleteByMaterial cascades", func(t *testing.T) {
		if err := s.DeleteByMaterial(ctx, 1); err != nil {
			t.Fatal(err)
		}
		remaining, _ := s.Scan(ctx, segmentModel.Scope{})
		for _, rec := range remaining {
			if rec.MaterialID == 1 {
				t.Error("material 1 still present after delete")
			}
		}
	})
}

func TestStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := InitInMemoryStore()

	if err := s.Replace(ctx, 1, batchFor(1, 100, 3)); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace(ctx, 2, batchFor(2, 200, 2)); err != nil {
		t.Fatal(err)
	}

	t.Run("Swaps only the target material", func(t *testing.T) {
		if err := s.Replace(ctx, 1, batchFor(1, 100, 4)); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		got, err := s.Scan(ctx, segmentModel.Scope{})
		if err != nil {
			t.Fatal(err)
		}
		counts := make(map[int64]int)
		for _, rec := range got {
			counts[rec.MaterialID]++
		}
		if counts[1] != 4 {
			t.Errorf("material 1 has %d segments after replace, want 4", counts[1])
		}
		if counts[2] != 2 {
			t.Errorf("material 2 disturbed by replace: %d segments, want 2", counts[2])
		}
	})

	t.Run("Empty batch rejected without mutating", func(t *testing.T) {
		if err := s.Replace(ctx, 1, nil); err == nil {
			t.Fatal("expected error for empty batch")
		}
		got, _ := s.Scan(ctx, segmentModel.Scope{DepartmentID: 100})
		if len(got) != 4 {
			t.Errorf("rejected replace mutated the store: %d records", len(got))
		}
	})
}

func TestStore_AtomicReplaceUnderScan(t *testing.T) {
	ctx := context.Background()
	s := InitInMemoryStore()
	const perMaterial = 7
	const writers = 20

	var wg sync.WaitGroup
	for m := int64(1); m <= writers; m++ {
		wg.Add(1)
		go func(materialID int64) {
			defer wg.Done()
			_ = s.Replace(ctx, materialID, batchFor(materialID, 1, perMaterial))
		}(m)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	for {
		select {
		case <-done:
			return
		default:
		}
		got, err := s.Scan(ctx, segmentModel.Scope{})
		if err != nil {
			t.Fatal(err)
		}
		counts := make(map[int64]int)
		for _, rec := range got {
			counts[rec.MaterialID]++
		}
		for materialID, n := range counts {
			if n != perMaterial {
				t.Fatalf("scan observed partial batch for material %d: %d of %d segments", materialID, n, perMaterial)
			}
		}
	}
}
