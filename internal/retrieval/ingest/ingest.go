package ingest

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/metrics"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/embedding"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/extract"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/segment"
	"github.com/campuslms/RetrievalAPI/internal/retrieval/store"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var logger *logger_i.Logger

// ProcessDocumentIngestion runs one uploaded material through
// extract -> segment -> embed -> replace. Any step failure aborts before the
// store is touched for this material, so a failed ingest never disturbs the
// segments already stored for it.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, embedStore store.EmbeddingStore) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", job.JobPayload.MaterialID)

	docPath := job.JobPayload.IngestURL
	log.Debug("Processing document", "filename", job.JobPayload.IngestFileName, "path", docPath)

	// The upload is consumed on every terminal outcome, success or not
	defer cleanupUpload(docPath, log)

	docType := extract.DetectType(docPath)
	if docType == segmentModel.ERR {
		log.Error("Unsupported document type", "path", docPath)
		// caller error - retrying the same file cannot succeed
		return failJob(job, http.StatusBadRequest, "Unsupported document type", false)
	}

	job.CurrentStep = jobModel.IngestExtracting
	text, err := extract.Text(docPath, docType)
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		return failJob(job, http.StatusUnprocessableEntity, "Error extracting document content", false)
	}
	if strings.TrimSpace(text) == "" {
		// scanned or image-only upload - report it, never store empty segments
		log.Info("No extractable text in document")
		job.Status = jobModel.JobStatusNoContent
		return job
	}

	job.CurrentStep = jobModel.IngestSegmenting
	chunks := segment.Split(text, config.ChunkSizeChars)
	log.Debug("Processing document", "chunks", len(chunks))

	job.CurrentStep = jobModel.EmbeddingAPICall
	vectors, err := BatchEmbed(ctx, chunks, e)
	if err != nil {
		log.Error("Error embedding document", "error", err)
		return failJob(job, http.StatusInternalServerError, "Error embedding document content", true)
	}

	job.CurrentStep = jobModel.StoreWriteCall
	batch := PrepareSegments(job.JobPayload, chunks, vectors)

	// Supersede atomically: the old segment set and the new batch swap in
	// one store operation, so a write failure leaves the previous version
	// readable instead of losing the material.
	if err := embedStore.Replace(ctx, job.JobPayload.MaterialID, batch); err != nil {
		log.Error("Error storing segments", "error", err)
		return failJob(job, http.StatusInternalServerError, "Error storing segments", true)
	}

	metrics.AddSegmentsIndexed(len(batch))
	job.JobPayload.SegmentCount = len(batch)
	job.Status = jobModel.JobStatusComplete
	return job
}

func failJob(job jobModel.Job, code int, message string, canRetry bool) jobModel.Job {
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.Error = jobModel.JobError{
		Code:    code,
		Message: message,
		Retry:   canRetry,
	}
	return job
}

func cleanupUpload(path string, log *logger_i.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Error("Error removing temp file", "error", err)
	}
}
