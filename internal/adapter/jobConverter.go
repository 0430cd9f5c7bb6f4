package adapter

import (
	"fmt"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/api"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		IngestResult: ToIngestResult(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToIngestResult(payload jobModel.JobPayload) *api.IngestResult {
	if payload.MaterialID == 0 {
		return nil
	}

	return &api.IngestResult{
		MaterialID:   payload.MaterialID,
		CourseID:     payload.CourseID,
		DepartmentID: payload.DepartmentID,
		FileName:     payload.IngestFileName,
		SegmentCount: payload.SegmentCount,
	}
}

func ToQueryResponse(results []segmentModel.RankedSegment, contextBlock string) api.QueryResponse {
	hits := make([]api.QueryHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, api.QueryHit{
			Text:       r.Text,
			Similarity: r.Similarity,
			MaterialID: r.MaterialID,
			CourseID:   r.CourseID,
		})
	}
	return api.QueryResponse{Results: hits, Context: contextBlock}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:       string(api.JobStatusError),
			IngestResult: ToIngestResult(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
