package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem EmbeddingStore")

// Store keeps segment records in insertion order behind one RWMutex, which
// is what makes a Replace all-or-nothing for concurrent readers. Used in
// tests and as the fallback when Postgres is offline.
type Store struct {
	mu      sync.RWMutex
	records []segmentModel.SegmentVector
}

func InitInMemoryStore() *Store {
	return &Store{}
}

func (s *Store) Replace(ctx context.Context, materialID int64, segments []segmentModel.SegmentVector) error {
	if len(segments) == 0 {
		return errors.New("empty segment batch")
	}

	copied := make([]segmentModel.SegmentVector, len(segments))
	copy(copied, segments)

	// Filter and append under one lock so readers see the old version or
	// the new one, never neither
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.MaterialID != materialID {
			kept = append(kept, rec)
		}
	}
	s.records = append(kept, copied...)
	inMemLogger.Debug("Replaced segment batch", "materialId", materialID, "segments", len(segments))
	return nil
}

func (s *Store) Scan(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []segmentModel.SegmentVector
	for _, rec := range s.records {
		if scope.Matches(rec.Segment) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) DeleteByMaterial(ctx context.Context, materialID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.MaterialID != materialID {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return nil
}
