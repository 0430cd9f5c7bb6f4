package jobModel

import (
	"context"
	"time"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued    JobStatus = "QUEUED"
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusComplete  JobStatus = "COMPLETE"
	JobStatusNoContent JobStatus = "NO_CONTENT"
	JobStatusError     JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtracting InternalStatus = "Extracting"
	IngestSegmenting InternalStatus = "Segmenting"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	StoreWriteCall   InternalStatus = "StoreWrite"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"
)

// Job tracks one material ingestion from upload to indexed segments.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	MaterialID   int64 `json:"material_id"`
	CourseID     int64 `json:"course_id"`
	DepartmentID int64 `json:"department_id"`

	IngestFileName string `json:"ingest_file_name,omitempty"`
	IngestURL      string `json:"ingest_url,omitempty"`

	// filled in as the pipeline progresses
	SegmentCount int `json:"segment_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
