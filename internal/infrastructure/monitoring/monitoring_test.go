package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsCollector_Analysis(t *testing.T) {
	m := NewMetricsCollector(prometheus.NewRegistry(), zap.NewNop())

	m.ObserveAnalysis("gustatory", 2*time.Millisecond, 2, 6)
	m.ObserveAnalysis("gustatory", time.Millisecond, 0, 0)
	m.ObserveAnalysis("mouthfeel", time.Millisecond, 1, 3)
	m.ObserveUnresolvedNames(2)
	m.ObserveUnresolvedNames(0)
	m.ObserveDegradedAnalysis("gustatory")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("gustatory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("mouthfeel")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unresolvedNames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.degradedAnalyses.WithLabelValues("gustatory")))
}

func TestMetricsCollector_CatalogLoad(t *testing.T) {
	m := NewMetricsCollector(prometheus.NewRegistry(), zap.NewNop())

	m.ObserveCatalogLoad("source", 10*time.Millisecond, 40, nil)
	m.ObserveCatalogLoad("source", time.Millisecond, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLoadsTotal.WithLabelValues("source", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogLoadsTotal.WithLabelValues("source", "error")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.catalogSize), "failed load keeps the last size")
}

func TestMetricsCollector_HTTPMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetricsCollector(prometheus.NewRegistry(), zap.NewNop())

	r := chi.NewRouter()
	r.Use(m.HTTPMiddleware)
	r.Get("/compositions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compositions/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues(http.MethodGet, "/compositions/{id}", "404")))
}

func TestMetricsCollector_Handler(t *testing.T) {
	m := NewMetricsCollector(nil, zap.NewNop())
	m.ObserveGustatoryScore(75)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "composer_gustatory_score_count 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestTelemetry_AnalysisLatencyExportedToPrometheus(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetricsCollector(registry, zap.NewNop())

	tel, err := NewTelemetry(context.Background(), TelemetryConfig{
		ServiceName:    "composer-test",
		ServiceVersion: "test",
		Environment:    "test",
		Registerer:     registry,
	}, zap.NewNop())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	metrics, err := tel.AnalysisMetrics(m)
	require.NoError(t, err)

	metrics.ObserveAnalysis("gustatory", 3*time.Millisecond, 1, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("gustatory")))

	families, err := registry.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "composer_analysis_latency") {
			found = true
		}
	}
	assert.True(t, found, "otel histogram should be exported")
}

func TestTelemetry_WithoutMetricsReturnsBase(t *testing.T) {
	tel, err := NewTelemetry(context.Background(), TelemetryConfig{ServiceName: "composer-test"}, zap.NewNop())
	require.NoError(t, err)

	m := NewMetricsCollector(prometheus.NewRegistry(), zap.NewNop())
	metrics, err := tel.AnalysisMetrics(m)
	require.NoError(t, err)
	assert.Same(t, m, metrics)

	handler := tel.InstrumentHTTPHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), "test")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NoError(t, tel.Shutdown(context.Background()))
}
