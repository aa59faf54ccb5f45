package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glinerd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "glinerd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "glinerd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
		[]string{"path"},
	)

	transportErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "glinerd",
			Subsystem: "http",
			Name:      "transport_errors_total",
			Help:      "Requests rejected before detection (bad content type or body)",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, transportErrorsTotal)
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflight := httpInflight.WithLabelValues(r.URL.Path)
		if _, known := knownPaths[r.URL.Path]; !known {
			inflight = httpInflight.WithLabelValues(unmatchedPath)
		}
		method := r.Method
		inflight.Inc()
		defer inflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		// chi resolves the pattern during routing; re-read it for the final label.
		path := routePatternOrPath(r)
		statusLabel := strconv.Itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, method, statusLabel).Observe(dur)
	})
}

// unmatchedPath labels requests that hit no route.
const unmatchedPath = "unmatched"

// knownPaths are the routes served by NewMux; anything else is unmatched.
var knownPaths = map[string]struct{}{
	"/": {}, "/health": {}, "/api/version": {}, "/api/pii/detect": {},
	"/api/status": {}, "/readyz": {}, "/metrics": {},
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// a fixed label. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	if _, known := knownPaths[r.URL.Path]; known {
		return r.URL.Path
	}
	return unmatchedPath
}

// IncrementTransportError counts a request rejected with 4xx before detection.
func IncrementTransportError(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	transportErrorsTotal.WithLabelValues(reason).Inc()
}
