package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"assistd/internal/service"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "assistd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
		[]string{"path"},
	)

	backpressureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistd",
			Subsystem: "http",
			Name:      "backpressure_total",
			Help:      "Total backpressure rejections (429)",
		},
		[]string{"reason"},
	)

	serviceReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "assistd",
			Subsystem: "service",
			Name:      "ready",
			Help:      "1 when the service is ready to serve, else 0",
		},
		[]string{"service"},
	)

	installsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistd",
			Subsystem: "service",
			Name:      "installs_total",
			Help:      "Download/install attempts by outcome",
		},
		[]string{"service", "outcome"},
	)

	inferenceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistd",
			Subsystem: "inference",
			Name:      "requests_total",
			Help:      "Inference calls by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	inferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assistd",
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Duration of inference calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		httpInflight,
		backpressureTotal,
		serviceReady,
		installsTotal,
		inferenceTotal,
		inferenceDuration,
	)
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
		path := routePatternOrPath(r)
		method := r.Method
		httpInflight.WithLabelValues(path).Inc()
		defer httpInflight.WithLabelValues(path).Dec()

		sr := &statusRecorder{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sr, r)
		statusLabel := itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, method, statusLabel).Observe(dur)
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// IncrementBackpressure is called when returning 429 to the client
func IncrementBackpressure(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	backpressureTotal.WithLabelValues(reason).Inc()
}

// observeInference records one inference call for /transcribe,
// /synthesize and /generate style endpoints.
func observeInference(svc string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	inferenceTotal.WithLabelValues(svc, outcome).Inc()
	inferenceDuration.WithLabelValues(svc).Observe(time.Since(start).Seconds())
}

// observeInstall records the outcome of a download request.
func observeInstall(svc string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	installsTotal.WithLabelValues(svc, outcome).Inc()
}

// MetricsPublisher mirrors service lifecycle events into the ready gauge.
// Install it on each service with SetPublisher.
type MetricsPublisher struct{}

func (MetricsPublisher) Publish(e service.Event) {
	if e.Name != "state" || e.Service == "" {
		return
	}
	state, _ := e.Fields["state"].(string)
	v := 0.0
	if state == string(service.StateReady) {
		v = 1.0
	}
	serviceReady.WithLabelValues(e.Service).Set(v)
}

// fast integer to ascii for small set of status codes
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
