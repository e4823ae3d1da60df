package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the matching
// API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	matchDuration   prometheus.Observer
	matchResultSize prometheus.Histogram
	capacityErrors  prometheus.Counter
	conflictRetries prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	matchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_duration_seconds",
		Help:    "Duration of tutor matching runs",
		Buckets: prometheus.DefBuckets,
	})

	matchResultSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_result_size",
		Help:    "Number of eligible tutors returned per matching run",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	capacityErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_capacity_exceeded_total",
		Help: "Booking attempts rejected because the slot was full",
	})

	conflictRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_version_conflicts_total",
		Help: "Optimistic version conflicts observed while adjusting booking counts",
	})

	registry.MustRegister(requestDuration, requestTotal, matchDuration, matchResultSize, capacityErrors, conflictRetries)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		matchDuration:   matchDuration,
		matchResultSize: matchResultSize,
		capacityErrors:  capacityErrors,
		conflictRetries: conflictRetries,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveMatchRun records a matching run's duration and result size.
func (m *MetricsService) ObserveMatchRun(duration time.Duration, resultSize int) {
	if m == nil {
		return
	}
	m.matchDuration.Observe(duration.Seconds())
	m.matchResultSize.Observe(float64(resultSize))
}

// RecordCapacityExceeded counts a rejected overbooking attempt.
func (m *MetricsService) RecordCapacityExceeded() {
	if m == nil {
		return
	}
	m.capacityErrors.Inc()
}

// RecordVersionConflict counts an optimistic concurrency retry.
func (m *MetricsService) RecordVersionConflict() {
	if m == nil {
		return
	}
	m.conflictRetries.Inc()
}
