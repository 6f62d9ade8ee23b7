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

var documentsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_ingested_total",
	Help: "Number of documents ingested labelled by mime type and outcome",
}, []string{"mime_type", "outcome"})

var chunksUpserted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chunks_upserted_total",
	Help: "Number of chunk vectors written to the index",
})

var activeIngestions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_ingestions",
	Help: "Number of documents currently being processed",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) CaptureWriteHeaderMetrics(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func RecordDocumentIngested(mimeType string, outcome string) {
	documentsIngested.WithLabelValues(mimeType, outcome).Inc()
}

func AddChunksUpserted(count int) {
	chunksUpserted.Add(float64(count))
}

func IncrementActiveIngestions() {
	activeIngestions.Inc()
}

func DecrementActiveIngestions() {
	activeIngestions.Dec()
}

var ingestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "document_ingest_duration_seconds",
	Help:    "Total time spent ingesting a document.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"mime_type"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureIngestMetrics(mimeType string, timeElapsed time.Duration) {
	ingestDuration.WithLabelValues(mimeType).Observe(timeElapsed.Seconds())
}
