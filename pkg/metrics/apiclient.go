package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIClientMetrics records every call the console makes to the tracker API.
type APIClientMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewAPIClientMetrics registers the API client metrics on the provided registerer.
func NewAPIClientMetrics(reg prometheus.Registerer) *APIClientMetrics {
	if reg == nil {
		return &APIClientMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sctracker_api_request_duration_seconds",
		Help:    "Duration of tracker API calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sctracker_api_requests_total",
		Help: "Tracker API calls by outcome.",
	}, []string{"resource", "operation", "status"})
	reg.MustRegister(duration, requests)
	return &APIClientMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one finished call. A status of 0 means the request never got a response.
func (m *APIClientMetrics) Observe(resource, operation string, status int, took time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	resource, operation = normalizeLabel(resource), normalizeLabel(operation)
	m.duration.WithLabelValues(resource, operation).Observe(took.Seconds())
	m.requests.WithLabelValues(resource, operation, StatusClass(status)).Inc()
}

// StatusClass collapses an HTTP status into 2xx/4xx/5xx, or "error" for transport failures.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return fmt.Sprintf("%dxx", status/100)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
