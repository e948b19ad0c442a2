// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the stepsort service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LatencyBuckets defines histogram buckets for in-process sorts, ranging
// from 100µs to 5s.
var LatencyBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// SizeBuckets are exponential buckets for array lengths and step counts.
var SizeBuckets = prometheus.ExponentialBuckets(1, 4, 10)

var (
	// RequestsTotal counts all HTTP requests by method, status class, and route.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stepsort_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stepsort_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LatencyBuckets,
		},
		[]string{"method", "route"},
	)

	// SortsTotal counts engine invocations by algorithm and outcome.
	SortsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stepsort_sorts_total",
			Help: "Sort invocations",
		},
		[]string{"algorithm", "outcome"},
	)

	// SortSteps records the number of steps recorded per sort.
	SortSteps = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stepsort_sort_steps",
			Help:    "Steps recorded per sort",
			Buckets: SizeBuckets,
		},
		[]string{"algorithm"},
	)

	// SortInputSize records the input array length per sort.
	SortInputSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stepsort_sort_input_size",
			Help:    "Input array length",
			Buckets: SizeBuckets,
		},
		[]string{"algorithm"},
	)

	// SortDuration records the time spent inside the sort engine.
	SortDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stepsort_sort_duration_seconds",
			Help:    "Sort engine duration",
			Buckets: LatencyBuckets,
		},
		[]string{"algorithm"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stepsort_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		SortsTotal,
		SortSteps,
		SortInputSize,
		SortDuration,
		RateLimitRejectedTotal,
	)
}
