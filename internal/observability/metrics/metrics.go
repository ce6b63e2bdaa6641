// Package metrics exposes Prometheus instruments for the HTTP surface and
// the external insight call.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds request-level instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// InsightMetrics counts external AI calls by outcome.
type InsightMetrics struct {
	calls *prometheus.CounterVec
}

// NewHTTPMetrics registers HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oasis_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oasis_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	prometheus.MustRegister(m.requests, m.duration)
	return m
}

// NewInsightMetrics registers the AI call counter on the default registry.
func NewInsightMetrics() *InsightMetrics {
	m := &InsightMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oasis_insight_calls_total",
			Help: "External AI insight calls by outcome.",
		}, []string{"outcome"}),
	}
	prometheus.MustRegister(m.calls)
	return m
}

// RecordCall increments the insight call counter.
func (m *InsightMetrics) RecordCall(outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(strings.TrimSpace(outcome)).Inc()
}

// GinMiddleware records per-request counters and latency.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
