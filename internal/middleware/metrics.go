package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hitchlog/backend/internal/metrics"
)

// PrometheusMetrics records request count and latency per method and chi
// route pattern. Labels use the pattern rather than the raw path so that
// /trips/1 and /trips/2 share a series.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		metrics.RecordAPIRequest(r.Method, routePattern(r), strconv.Itoa(ww.Status()), time.Since(start))
	})
}
