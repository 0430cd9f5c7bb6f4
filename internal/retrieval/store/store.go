package store

import (
	"context"

	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

// EmbeddingStore is the append-only repository of segment+vector records.
// Records are created in one atomic batch per ingestion and never mutated;
// a material is superseded by replacing its whole row set in one operation.
type EmbeddingStore interface {
	// Replace atomically swaps a material's existing records for the new
	// batch, persisting the whole batch or nothing. On failure the previous
	// records stay readable - re-ingestion never loses the old version to a
	// failed write, and a concurrent Scan must never observe a partial
	// prefix of one material's segments.
	Replace(ctx context.Context, materialID int64, segments []segmentModel.SegmentVector) error

	// Scan returns candidate records, optionally narrowed to one
	// department. Insertion order is preserved.
	Scan(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error)

	// DeleteByMaterial removes every record owned by one material. Used on
	// material deletion.
	DeleteByMaterial(ctx context.Context, materialID int64) error
}
