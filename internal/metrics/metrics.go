// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the application metrics: submission outcomes, storage
// fallback activations, and HTTP request counts/latency.
type Collector struct {
	submissions      *prometheus.CounterVec
	storageFallbacks *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetingreg_submissions_total",
			Help: "Submission attempts by kind and outcome",
		}, []string{"kind", "outcome"}),
		storageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetingreg_storage_fallback_total",
			Help: "Operations that degraded from the remote store to the local fallback",
		}, []string{"entity", "op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "meetingreg_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "meetingreg_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.submissions, c.storageFallbacks, c.httpRequests, c.httpLatency)
	return c
}

// RecordSubmission counts one submission attempt.
func (c *Collector) RecordSubmission(kind, outcome string) {
	c.submissions.WithLabelValues(kind, outcome).Inc()
}

// RecordStorageFallback counts one remote-to-local degradation.
func (c *Collector) RecordStorageFallback(entity, op string) {
	c.storageFallbacks.WithLabelValues(entity, op).Inc()
}

// RecordHTTPRequest counts one finished HTTP request.
func (c *Collector) RecordHTTPRequest(method string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// Handler exposes the registry in Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
