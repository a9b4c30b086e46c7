// Package metrics collects and exposes Prometheus metrics for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records API request metrics.
type Collector struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	upserts  prometheus.Counter
	deletes  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vibejournal_http_requests_total",
			Help: "API requests by method and status code.",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vibejournal_http_request_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		upserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibejournal_entries_upserted_total",
			Help: "Journal entries created or overwritten.",
		}),
		deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vibejournal_entries_deleted_total",
			Help: "Journal entries deleted.",
		}),
	}

	reg.MustRegister(c.requests, c.latency, c.upserts, c.deletes)
	return c
}

// RecordRequest records one handled API request.
func (c *Collector) RecordRequest(method string, statusCode int, dur time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.latency.Observe(dur.Seconds())
}

// RecordEntryUpserted counts a stored entry.
func (c *Collector) RecordEntryUpserted() { c.upserts.Inc() }

// RecordEntryDeleted counts a removed entry.
func (c *Collector) RecordEntryDeleted() { c.deletes.Inc() }

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
