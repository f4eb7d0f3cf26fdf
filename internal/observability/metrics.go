package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec
	callsProcessed        prometheus.Counter
	actionItemsExtracted  prometheus.Counter
	speakerLabels         *prometheus.CounterVec
	stageDuration         *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsummarzy_http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"route", "method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callsummarzy_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		upstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsummarzy_upstream_requests_total",
				Help: "Total upstream OpenAI-compatible API requests.",
			},
			[]string{"endpoint", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callsummarzy_upstream_request_duration_seconds",
				Help:    "Upstream request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status"},
		),
		callsProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "callsummarzy_calls_processed_total",
				Help: "Number of calls transcribed and analyzed end to end.",
			},
		),
		actionItemsExtracted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "callsummarzy_action_items_extracted_total",
				Help: "Total action items extracted across all calls.",
			},
		),
		speakerLabels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callsummarzy_speaker_labels_total",
				Help: "Speaker labels produced, split by resolved names versus synthetic labels.",
			},
			[]string{"kind"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callsummarzy_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamRequestsTotal,
		m.upstreamDuration,
		m.callsProcessed,
		m.actionItemsExtracted,
		m.speakerLabels,
		m.stageDuration,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	if method == "" {
		method = "UNKNOWN"
	}
	statusLabel := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(route, method, statusLabel).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusLabel).Observe(duration.Seconds())
}

func (m *Metrics) ObserveUpstream(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	statusLabel := strconv.Itoa(status)
	m.upstreamRequestsTotal.WithLabelValues(endpoint, statusLabel).Inc()
	m.upstreamDuration.WithLabelValues(endpoint, statusLabel).Observe(duration.Seconds())
}

// ObserveCall records the outcome of one processed call.
func (m *Metrics) ObserveCall(namedSpeakers, syntheticSpeakers, actionItems int) {
	if m == nil {
		return
	}
	m.callsProcessed.Inc()
	m.actionItemsExtracted.Add(float64(actionItems))
	m.speakerLabels.WithLabelValues("named").Add(float64(namedSpeakers))
	m.speakerLabels.WithLabelValues("synthetic").Add(float64(syntheticSpeakers))
}

// ObserveStage records how long one pipeline stage took.
func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
