package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_ingestion_jobs_in_queue",
	Help: "Number of ingestion jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var segmentsIndexedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "segments_indexed_total",
	Help: "Total number of material segments appended to the embedding store",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

// WriteHeader shadows the embedded writer so handlers writing any status
// through the wrapper get it recorded for the request counter.
func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func AddSegmentsIndexed(count int) {
	segmentsIndexedTotal.Add(float64(count))
}

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ingestion_job_duration_seconds",
	Help:    "Total time spent processing one ingestion job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pipeline_stage_latency_seconds",
	Help:    "Latency of pipeline stages and external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"stage"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	stageLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	jobDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
