package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the transcription pipeline
// and the HTTP surface. All Record helpers tolerate a nil receiver so
// unmetered test wiring stays trivial.
type Metrics struct {
	TranscriptionRequests prometheus.Counter
	TranscriptionFailures prometheus.Counter
	TranscriptionDuration prometheus.Histogram

	ExtractionRequests  prometheus.Counter
	ExtractionFallbacks prometheus.Counter

	PipelineRequests *prometheus.CounterVec

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all metrics against the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TranscriptionRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "stt_transcription_requests_total",
			Help: "Total number of speech recognition requests sent",
		}),
		TranscriptionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stt_transcription_failures_total",
			Help: "Total number of failed speech recognition requests",
		}),
		TranscriptionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "stt_transcription_duration_seconds",
			Help:    "Duration of speech recognition requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
		ExtractionRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "stt_extraction_requests_total",
			Help: "Total number of meeting-data extraction requests sent",
		}),
		ExtractionFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "stt_extraction_fallbacks_total",
			Help: "Total number of extraction requests that fell back to an empty result",
		}),
		PipelineRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stt_pipeline_requests_total",
			Help: "Total number of pipeline runs by outcome",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stt_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stt_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

func (m *Metrics) RecordTranscriptionRequest() {
	if m == nil {
		return
	}
	m.TranscriptionRequests.Inc()
}

func (m *Metrics) RecordTranscriptionSuccess(durationSeconds float64) {
	if m == nil {
		return
	}
	m.TranscriptionDuration.Observe(durationSeconds)
}

func (m *Metrics) RecordTranscriptionFailure(durationSeconds float64) {
	if m == nil {
		return
	}
	m.TranscriptionFailures.Inc()
	m.TranscriptionDuration.Observe(durationSeconds)
}

func (m *Metrics) RecordExtractionRequest() {
	if m == nil {
		return
	}
	m.ExtractionRequests.Inc()
}

func (m *Metrics) RecordExtractionFallback() {
	if m == nil {
		return
	}
	m.ExtractionFallbacks.Inc()
}

func (m *Metrics) RecordPipelineOutcome(outcome string) {
	if m == nil {
		return
	}
	m.PipelineRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}
