package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/job"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

// MockRetrievalService to track if jobs are executed
type MockRetrievalService struct {
	ProcessedCount int32
}

func (m *MockRetrievalService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	j.Status = jobModel.JobStatusComplete
	return j
}

func (m *MockRetrievalService) Query(ctx context.Context, text string, scope segmentModel.Scope, topK int) []segmentModel.RankedSegment {
	return []segmentModel.RankedSegment{}
}

func (m *MockRetrievalService) Purge(ctx context.Context, materialID int64) error {
	return nil
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	panic("not used in worker tests")
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {
	panic("not used in worker tests")
}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          &MockJobStore{},
	}
	mockRetrieval := &MockRetrievalService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRetrieval)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes an ingestion job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobPayload: jobModel.JobPayload{MaterialID: 7}}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRetrieval.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
	})

	t.Run("Terminal status from the pipeline is persisted", func(t *testing.T) {
		var lastStatus jobModel.JobStatus
		var mu sync.Mutex
		jobSvc.JobStore = &MockJobStore{
			OnSaveJob: func(ctx context.Context, j jobModel.Job) error {
				mu.Lock()
				lastStatus = j.Status
				mu.Unlock()
				return nil
			},
		}

		jobSvc.JobChannel <- jobModel.Job{Id: "test-2"}
		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		if lastStatus != jobModel.JobStatusComplete {
			t.Errorf("Expected final saved status COMPLETE, got %q", lastStatus)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	// Temporarily override config/globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0) // Lets the lone worker retire
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockRetrievalService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}
