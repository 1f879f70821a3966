// Package monitoring provides Prometheus metrics and OpenTelemetry setup
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/ports/outbound"
)

const namespace = "composer"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Analysis metrics
	analysesTotal       *prometheus.CounterVec
	analysisDuration    *prometheus.HistogramVec
	missingElements     *prometheus.HistogramVec
	suggestionsReturned *prometheus.HistogramVec
	gustatoryScore      prometheus.Histogram
	unresolvedNames     prometheus.Counter
	degradedAnalyses    *prometheus.CounterVec

	// Catalog metrics
	catalogLoadsTotal   *prometheus.CounterVec
	catalogLoadDuration *prometheus.HistogramVec
	catalogSize         prometheus.Gauge
}

var (
	_ outbound.AnalysisMetrics = (*MetricsCollector)(nil)
	_ outbound.CatalogMetrics  = (*MetricsCollector)(nil)
)

// NewMetricsCollector creates a collector whose metrics are registered on
// registry. A nil registry gets a fresh one with the process and Go
// collectors.
func NewMetricsCollector(registry *prometheus.Registry, logger *zap.Logger) *MetricsCollector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}

	m := &MetricsCollector{
		logger:   logger,
		registry: registry,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path", "status_code"},
		),

		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of composition analyses",
			},
			[]string{"variant"},
		),
		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Composition analysis duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"variant"},
		),
		missingElements: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_missing_elements",
				Help:      "Number of missing elements detected per analysis",
				Buckets:   prometheus.LinearBuckets(0, 1, 8),
			},
			[]string{"variant"},
		),
		suggestionsReturned: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_suggestions",
				Help:      "Number of suggestions returned per analysis",
				Buckets:   prometheus.LinearBuckets(0, 2, 6),
			},
			[]string{"variant"},
		),
		gustatoryScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gustatory_score",
				Help:      "Overall gustatory balance score",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
		),
		unresolvedNames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unresolved_names_total",
				Help:      "Ingredient names that fell back to a placeholder",
			},
		),
		degradedAnalyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_analyses_total",
				Help:      "Analyses answered with an empty result because the catalog was unavailable",
			},
			[]string{"variant"},
		),

		catalogLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_loads_total",
				Help:      "Catalog loads by origin and status",
			},
			[]string{"origin", "status"},
		),
		catalogLoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_load_duration_seconds",
				Help:      "Catalog load duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"origin"},
		),
		catalogSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_ingredients",
				Help:      "Number of ingredients in the cached catalog",
			},
		),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpResponseSize,
		m.analysesTotal,
		m.analysisDuration,
		m.missingElements,
		m.suggestionsReturned,
		m.gustatoryScore,
		m.unresolvedNames,
		m.degradedAnalyses,
		m.catalogLoadsTotal,
		m.catalogLoadDuration,
		m.catalogSize,
	)

	return m
}

// Registry returns the registry the collector writes to
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// HTTPMiddleware records request metrics labelled with the chi route pattern
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		statusCode := strconv.Itoa(status)
		path := routePattern(r)

		m.httpRequestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		m.httpResponseSize.WithLabelValues(r.Method, path, statusCode).Observe(float64(ww.BytesWritten()))
	})
}

// ObserveAnalysis records one completed analysis
func (m *MetricsCollector) ObserveAnalysis(variant string, duration time.Duration, missing, suggestions int) {
	m.analysesTotal.WithLabelValues(variant).Inc()
	m.analysisDuration.WithLabelValues(variant).Observe(duration.Seconds())
	m.missingElements.WithLabelValues(variant).Observe(float64(missing))
	m.suggestionsReturned.WithLabelValues(variant).Observe(float64(suggestions))
}

// ObserveGustatoryScore records an overall score
func (m *MetricsCollector) ObserveGustatoryScore(score int) {
	m.gustatoryScore.Observe(float64(score))
}

// ObserveUnresolvedNames counts names answered with a placeholder
func (m *MetricsCollector) ObserveUnresolvedNames(count int) {
	if count > 0 {
		m.unresolvedNames.Add(float64(count))
	}
}

// ObserveDegradedAnalysis counts analyses that fell back to an empty result
func (m *MetricsCollector) ObserveDegradedAnalysis(variant string) {
	m.degradedAnalyses.WithLabelValues(variant).Inc()
}

// ObserveCatalogLoad records a catalog load attempt
func (m *MetricsCollector) ObserveCatalogLoad(origin string, duration time.Duration, size int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.catalogLoadsTotal.WithLabelValues(origin, status).Inc()
	m.catalogLoadDuration.WithLabelValues(origin).Observe(duration.Seconds())
	if err == nil {
		m.catalogSize.Set(float64(size))
	}
}

// Handler returns the Prometheus metrics HTTP handler for the registry
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
