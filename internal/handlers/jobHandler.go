package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/job"
	"github.com/campuslms/RetrievalAPI/internal/metrics"
	"github.com/campuslms/RetrievalAPI/internal/retrieval"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service          *job.Service
	retrievalService retrieval.Service
}

func InitJobHandler(jobService *job.Service, retrievalService retrieval.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, retrievalService: retrievalService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new ingestion job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.IngestInit
	_job.JobPayload.MaterialID = newJob.materialID
	_job.JobPayload.CourseID = newJob.courseID
	_job.JobPayload.DepartmentID = newJob.departmentID
	_job.JobPayload.IngestFileName = newJob.documentName
	_job.JobPayload.IngestURL = newJob.documentSource

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//ingestion involves batch embedding calls that can take a while, so every
	//queued ingestion asks the dispatcher for another worker; idle workers
	//retire on their own, which keeps the pool at one worker most of the time

	atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	metrics.StartDispatcherSignalCount()        //metrics
	h.service.DispatcherChannel <- true
}
