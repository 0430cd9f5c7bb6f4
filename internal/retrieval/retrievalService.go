package retrieval

import (
	"context"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/metrics"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/ingest"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/store"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

// Service is the public contract the transport and worker layers see. The
// private struct underneath holds the encoder and the store; keeping it
// lowercase stops other packages from reaching around the interface, and
// NewService is where test doubles get swapped in.
type Service interface {
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	Query(ctx context.Context, text string, scope segmentModel.Scope, topK int) []segmentModel.RankedSegment
	Purge(ctx context.Context, materialID int64) error
}

type service struct {
	embedStore store.EmbeddingStore
	embedder   embedding.Embedder
	logger     *logger_i.Logger
}

// NewService constructor
func NewService(embedStore store.EmbeddingStore, em embedding.Embedder) Service {
	return &service{
		embedStore: embedStore,
		embedder:   em,
		logger:     logger_i.NewLogger("Retrieval Service :"),
	}
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	j := ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.embedStore)
	if j.Status == jobModel.JobStatusError {
		// the pipeline already classified the failure; surface it untouched
		s.logger.Error("Ingestion failed",
			"traceId", ctx.Value(traceKey()),
			"materialId", j.JobPayload.MaterialID,
			"error", j.Error.Message,
			"retry", j.Error.Retry)
	}
	return j
}

// Query embeds the question, scans the scoped candidates and ranks them.
// Every failure on this path degrades to an empty result set: retrieval
// context is an optional enrichment for the caller's generation step, never
// something that may fail the caller's primary task.
func (s *service) Query(ctx context.Context, text string, scope segmentModel.Scope, topK int) []segmentModel.RankedSegment {
	inMethodLogger := s.logger.With("traceId", ctx.Value(traceKey()))

	queryVector, err := s.executeEmbeddingStep(ctx, text)
	if err != nil {
		inMethodLogger.Error("Query degraded to empty context", "step", "embedding", "error", err)
		return []segmentModel.RankedSegment{}
	}

	// the caller's deadline bounds the expensive part; past it we fail
	// closed instead of ranking late
	if ctx.Err() != nil {
		inMethodLogger.Error("Query deadline hit after embedding", "error", ctx.Err())
		return []segmentModel.RankedSegment{}
	}

	candidates, err := s.executeScanStep(ctx, scope)
	if err != nil {
		inMethodLogger.Error("Query degraded to empty context", "step", "store_scan", "error", err)
		return []segmentModel.RankedSegment{}
	}
	if len(candidates) == 0 {
		return []segmentModel.RankedSegment{}
	}

	results := s.executeRankingStep(queryVector, candidates, topK)
	inMethodLogger.Debug("Query ranked candidates", "candidates", len(candidates), "returned", len(results))
	return results
}

func (s *service) Purge(ctx context.Context, materialID int64) error {
	log := s.logger.With("traceId", ctx.Value(traceKey()), "materialId", materialID)

	if err := s.embedStore.DeleteByMaterial(ctx, materialID); err != nil {
		log.Error("Purge failed", "error", err)
		return err
	}
	log.Info("Purged material segments")
	return nil
}
