package controller

import (
	"net/http"
	"strconv"
	"time"

	"dmbot/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestDuration tracks HTTP request latency per path, method and status.
var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Name:    "http_request_duration_seconds",
	Help:    "Duration of HTTP requests handled by the server.",
	Buckets: metrics.DefaultBuckets,
}, []string{"path", "method", "status"})

// WithMetrics returns a middleware that records a latency histogram for every
// request using the default Prometheus registerer. The path label uses the raw
// URL path; this service exposes a small fixed set of routes so label
// cardinality stays bounded.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		requestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}
