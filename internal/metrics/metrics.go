package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP request processing in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Domain metrics
	BlogOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_operations_total",
		Help: "Total number of successful blog operations",
	}, []string{"operation"})
	UserOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_operations_total",
		Help: "Total number of user registrations and logins by outcome",
	}, []string{"operation", "outcome"})

	registerOnce sync.Once
)

// Register registers all collectors with the default registry
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			BlogOperationsTotal,
			UserOperationsTotal,
		)
	})
}

// Handler returns an HTTP handler that exposes the registered metrics
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// BlogOperation counts a successful blog operation
func BlogOperation(op string) {
	BlogOperationsTotal.WithLabelValues(op).Inc()
}

// UserOperation counts a user operation with its outcome
func UserOperation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UserOperationsTotal.WithLabelValues(op, outcome).Inc()
}

// Middleware instruments HTTP handlers with request count and latency.
// Requests are labelled by chi route pattern so ids do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
