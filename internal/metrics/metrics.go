package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitalik_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orbitalik_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	computationsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitalik_computations_in_flight",
			Help: "Pass and trajectory requests currently being computed.",
		},
	)

	computationsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitalik_computations_rejected_total",
			Help: "Requests refused because the client had too many computations in flight.",
		},
	)

	passComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitalik_pass_computations_total",
			Help: "Pass computations by outcome.",
		},
		[]string{"outcome"},
	)

	passComputationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitalik_pass_computation_seconds",
			Help:    "Time spent computing filtered passes for one request.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	passesFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitalik_passes_found_total",
			Help: "Passes returned after filtering.",
		},
	)

	tleDatasetCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitalik_tle_dataset_satellites",
			Help: "Number of element sets in the active dataset.",
		},
	)

	tleDatasetAgeSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitalik_tle_dataset_age_seconds",
			Help: "Seconds since the active dataset was fetched.",
		},
	)

	tleRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitalik_tle_refresh_total",
			Help: "TLE refresh attempts by result.",
		},
		[]string{"result"},
	)

	tleRefreshSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orbitalik_tle_refresh_seconds",
			Help:    "Duration of TLE refreshes.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

// Pass computation outcomes.
const (
	OutcomeOK                 = "ok"
	OutcomeNotFound           = "not_found"
	OutcomeRootFailure        = "root_failure"
	OutcomePropagationFailure = "propagation_failure"
	OutcomeError              = "error"
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDurationSeconds,
		computationsInFlight,
		computationsRejectedTotal,
		passComputationsTotal,
		passComputationSeconds,
		passesFoundTotal,
		tleDatasetCount,
		tleDatasetAgeSeconds,
		tleRefreshTotal,
		tleRefreshSeconds,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncComputationsInFlight increments the in-flight computation gauge.
func IncComputationsInFlight() {
	computationsInFlight.Inc()
}

// DecComputationsInFlight decrements the in-flight computation gauge.
func DecComputationsInFlight() {
	computationsInFlight.Dec()
}

// IncComputationsRejected counts a request refused by the concurrency limit.
func IncComputationsRejected() {
	computationsRejectedTotal.Inc()
}

// RecordPassComputation records one filtered-pass computation.
func RecordPassComputation(outcome string, d time.Duration, found int) {
	passComputationsTotal.WithLabelValues(outcome).Inc()
	passComputationSeconds.Observe(d.Seconds())
	passesFoundTotal.Add(float64(found))
}

// SetTLEDatasetCount sets the number of loaded element sets.
func SetTLEDatasetCount(n int) {
	tleDatasetCount.Set(float64(n))
}

// SetTLEDatasetAge sets the dataset age gauge.
func SetTLEDatasetAge(seconds float64) {
	tleDatasetAgeSeconds.Set(seconds)
}

// RecordTLERefresh records the result of one refresh.
func RecordTLERefresh(ok bool, d time.Duration) {
	result := "success"
	if !ok {
		result = "failure"
	}
	tleRefreshTotal.WithLabelValues(result).Inc()
	tleRefreshSeconds.Observe(d.Seconds())
}

var knownRoutes = map[string]bool{
	"/":                   true,
	"/healthz":            true,
	"/readyz":             true,
	"/metrics":            true,
	"/api/v1/satellites":  true,
	"/api/v1/passes":      true,
	"/api/v1/tle/refresh": true,
}

const satellitePrefix = "/api/v1/satellites/"

// normalizeRoute collapses request paths to a bounded label set.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	if rest, ok := strings.CutPrefix(path, satellitePrefix); ok && rest != "" && !strings.Contains(rest, "/") {
		return satellitePrefix + "{name}"
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := normalizeRoute(r.URL.Path)
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
