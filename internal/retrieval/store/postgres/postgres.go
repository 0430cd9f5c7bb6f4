package postgres

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

// segmentRow is the persisted record shape - one row per segment, the
// vector serialized as a JSON float sequence so it round-trips exactly.
type segmentRow struct {
	bun.BaseModel `bun:"table:pdf_embeddings,alias:pe"`

	ID           int64     `bun:"id,pk,autoincrement"`
	MaterialID   int64     `bun:"material_id,notnull"`
	CourseID     int64     `bun:"course_id,notnull"`
	DepartmentID int64     `bun:"department_id,notnull"`
	ChunkIndex   int       `bun:"chunk_index,notnull"`
	ChunkText    string    `bun:"chunk_text,notnull"`
	Embedding    []float32 `bun:"embedding_vector,notnull,type:jsonb"`
}

type Store struct {
	db     *bun.DB
	logger *logger_i.Logger
}

// Connect opens the Postgres-backed store and ensures the segment table
// exists. Returns nil when the database is unreachable - the caller decides
// whether that is fatal.
func Connect(ctx context.Context, dsn string) *Store {
	logger := logger_i.NewLogger("Embedding Store")

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if config.PostgresDebugHooks {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Error("Postgres is offline: ", "error", err)
		return nil
	}

	s := &Store{db: db, logger: logger}
	if err := s.init(ctx); err != nil {
		logger.Error("could not create segment table", "error", err)
		return nil
	}

	go s.closeOnDone(ctx)
	logger.Info("Embedding store init successfully")
	return s
}

func (s *Store) init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*segmentRow)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	s.logger.Info("Closing embedding store")
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing embedding store", "error", err)
	}
}

func rowsFor(segments []segmentModel.SegmentVector) []segmentRow {
	rows := make([]segmentRow, len(segments))
	for i, sv := range segments {
		rows[i] = segmentRow{
			MaterialID:   sv.MaterialID,
			CourseID:     sv.CourseID,
			DepartmentID: sv.DepartmentID,
			ChunkIndex:   sv.ChunkIndex,
			ChunkText:    sv.Text,
			Embedding:    sv.Embedding,
		}
	}
	return rows
}

func (s *Store) Replace(ctx context.Context, materialID int64, segments []segmentModel.SegmentVector) error {
	if len(segments) == 0 {
		return errors.New("empty segment batch")
	}
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", materialID)

	rows := rowsFor(segments)

	// Delete and insert commit together: a concurrent Scan sees the old
	// version or the new batch in full, and a failed write rolls back to
	// the previous version instead of leaving the material gone
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*segmentRow)(nil)).Where("material_id = ?", materialID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
	if err != nil {
		log.Error("Error replacing segment batch", "error", err)
		return err
	}
	log.Debug("Replaced segment batch", "segments", len(rows))
	return nil
}

func (s *Store) Scan(ctx context.Context, scope segmentModel.Scope) ([]segmentModel.SegmentVector, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	var rows []segmentRow
	q := s.db.NewSelect().Model(&rows).Order("id ASC")
	if !scope.IsZero() {
		q = q.Where("department_id = ?", scope.DepartmentID)
	}
	if err := q.Scan(ctx); err != nil {
		log.Error("Error scanning segments", "error", err)
		return nil, err
	}

	out := make([]segmentModel.SegmentVector, len(rows))
	for i, r := range rows {
		out[i] = segmentModel.SegmentVector{
			Segment: segmentModel.Segment{
				MaterialID:   r.MaterialID,
				CourseID:     r.CourseID,
				DepartmentID: r.DepartmentID,
				ChunkIndex:   r.ChunkIndex,
				Text:         r.ChunkText,
			},
			Embedding: r.Embedding,
		}
	}
	return out, nil
}

func (s *Store) DeleteByMaterial(ctx context.Context, materialID int64) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", materialID)

	_, err := s.db.NewDelete().Model((*segmentRow)(nil)).Where("material_id = ?", materialID).Exec(ctx)
	if err != nil {
		log.Error("Error deleting material segments", "error", err)
		return err
	}
	log.Debug("Deleted material segments")
	return nil
}
