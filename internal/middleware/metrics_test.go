package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/hitchlog/backend/internal/metrics"
	"github.com/hitchlog/backend/internal/middleware"
)

func TestPrometheusMetrics_countsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Get("/hitchhikes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/hitchhikes/{id}", "200")
	before := promtestutil.ToFloat64(counter)

	for _, path := range []string{"/hitchhikes/1", "/hitchhikes/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, promtestutil.ToFloat64(counter))
}

func TestPrometheusMetrics_labelsUnknownPathsAsUnmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Get("/trips", func(w http.ResponseWriter, _ *http.Request) {})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := promtestutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, promtestutil.ToFloat64(counter))
}
