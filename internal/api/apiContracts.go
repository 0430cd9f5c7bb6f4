package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// IngestResult surfaces what the pipeline did with the material once the
// job reaches a terminal state.
type IngestResult struct {
	MaterialID   int64  `json:"material_id"`
	CourseID     int64  `json:"course_id"`
	DepartmentID int64  `json:"department_id"`
	FileName     string `json:"file_name,omitempty"`
	SegmentCount int    `json:"segment_count"`
}

type Result struct {
	Status       string        `json:"status"`
	IngestResult *IngestResult `json:"ingest_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type QueryRequest struct {
	Text         string `json:"text" validate:"required"`
	DepartmentID int64  `json:"department_id,omitempty"`
	TopK         int    `json:"top_k,omitempty"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

// responses---------------------

type QueryHit struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	MaterialID int64   `json:"material_id"`
	CourseID   int64   `json:"course_id"`
}

// QueryResponse carries the ranked hits plus the preformatted context block
// callers can drop straight into a generation prompt.
type QueryResponse struct {
	Results []QueryHit `json:"results"`
	Context string     `json:"context"`
}

type PurgeResponse struct {
	MaterialID int64  `json:"material_id"`
	Status     string `json:"status"`
}
