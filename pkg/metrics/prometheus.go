// Package metrics provides Prometheus metrics for the recommendation engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Business metrics.
	recommendationsTotal prometheus.Counter
	recommendationErrors *prometheus.CounterVec
	supersededRequests   prometheus.Counter
	malformedPlaces      prometheus.Counter
	badCoordinates       prometheus.Counter
	resultCount          prometheus.Histogram
	pipelineDuration     prometheus.Histogram

	// Catalog metrics.
	catalogSize   prometheus.Gauge
	catalogErrors prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "voyago",
		subsystem:        "recommend",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.recommendationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "requests_total",
		Help:      "Total recommendation requests served.",
	})
	m.recommendationErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Recommendation requests failed, by error kind.",
	}, []string{"kind"})
	m.supersededRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "superseded_total",
		Help:      "In-flight requests dropped because a newer one arrived.",
	})
	m.malformedPlaces = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_places_total",
		Help:      "Catalog records dropped for invalid fields.",
	})
	m.badCoordinates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bad_coordinates_total",
		Help:      "Catalog records dropped for out-of-range coordinates.",
	})
	m.resultCount = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_count",
		Help:      "Number of recommendations returned per request.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})
	m.pipelineDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pipeline_duration_seconds",
		Help:      "Wall time of the filter-score-rank-project pipeline.",
		Buckets:   m.histogramBuckets,
	})

	m.catalogSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "places",
		Help:      "Places currently held by the catalog.",
	})
	m.catalogErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "errors_total",
		Help:      "Catalog fetch failures.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})
}

// Handler exposes the manager's registry for a /metrics endpoint.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// Package-level record helpers operating on the global manager.

func RecordRequest() {
	if globalManager.enabled {
		globalManager.recommendationsTotal.Inc()
	}
}

func RecordRequestError(kind string) {
	if globalManager.enabled {
		globalManager.recommendationErrors.WithLabelValues(kind).Inc()
	}
}

func RecordSuperseded() {
	if globalManager.enabled {
		globalManager.supersededRequests.Inc()
	}
}

func RecordMalformedPlaces(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.malformedPlaces.Add(float64(n))
	}
}

func RecordBadCoordinates(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.badCoordinates.Add(float64(n))
	}
}

func RecordResultCount(n int) {
	if globalManager.enabled {
		globalManager.resultCount.Observe(float64(n))
	}
}

func RecordPipelineDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.pipelineDuration.Observe(seconds)
	}
}

func UpdateCatalogSize(n int) {
	if globalManager.enabled {
		globalManager.catalogSize.Set(float64(n))
	}
}

func RecordCatalogError() {
	if globalManager.enabled {
		globalManager.catalogErrors.Inc()
	}
}

func RecordHTTPRequest(endpoint, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint string, seconds float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(seconds)
	}
}

// Handler exposes the global manager's registry.
func Handler() http.Handler {
	return globalManager.Handler()
}
