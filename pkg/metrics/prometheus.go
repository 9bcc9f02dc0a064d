// Package metrics provides Prometheus metrics for the scoutroute planning service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoutroute service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - planning pipeline outcomes
	plansComputed       prometheus.Counter
	planDuration        prometheus.Histogram
	eventsGenerated     prometheus.Counter
	candidatesGenerated prometheus.Counter
	tripsSelected       prometheus.Counter
	flyInVisits         prometheus.Counter
	unreachablePlayers  prometheus.Counter

	// Operational Health Metrics
	storedPlans     prometheus.Gauge
	coveragePercent prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoutroute",
		subsystem:        "planner",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.plansComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plans_computed_total",
		Help:      "Total number of planning runs completed",
	})

	m.planDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plan_duration_milliseconds",
		Help:      "Histogram of full pipeline duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.eventsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_generated_total",
		Help:      "Total visit opportunities produced across planning runs",
	})

	m.candidatesGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_generated_total",
		Help:      "Total trip candidates enumerated across planning runs",
	})

	m.tripsSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trips_selected_total",
		Help:      "Total trips accepted by the selection engine",
	})

	m.flyInVisits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fly_in_visits_total",
		Help:      "Total fly-in visit records emitted",
	})

	m.unreachablePlayers = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unreachable_players_total",
		Help:      "Total athletes reported unreachable",
	})

	m.storedPlans = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stored_plans",
		Help:      "Number of plans currently held in the plan store",
	})

	m.coveragePercent = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "coverage_percent",
		Help:      "Road-trip athlete coverage of the most recent plan",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordPlanComputed increments the completed planning runs counter.
func RecordPlanComputed() {
	globalManager.plansComputed.Inc()
}

// RecordPlanDuration records full pipeline duration in milliseconds.
func RecordPlanDuration(durationMs float64) {
	globalManager.planDuration.Observe(durationMs)
}

// RecordEventsGenerated adds to the generated visit opportunities counter.
func RecordEventsGenerated(n int) {
	globalManager.eventsGenerated.Add(float64(n))
}

// RecordCandidatesGenerated adds to the enumerated candidates counter.
func RecordCandidatesGenerated(n int) {
	globalManager.candidatesGenerated.Add(float64(n))
}

// RecordTripsSelected adds to the accepted trips counter.
func RecordTripsSelected(n int) {
	globalManager.tripsSelected.Add(float64(n))
}

// RecordFlyInVisits adds to the fly-in records counter.
func RecordFlyInVisits(n int) {
	globalManager.flyInVisits.Add(float64(n))
}

// RecordUnreachablePlayers adds to the unreachable athletes counter.
func RecordUnreachablePlayers(n int) {
	globalManager.unreachablePlayers.Add(float64(n))
}

// UpdateStoredPlans sets the plan store size gauge.
func UpdateStoredPlans(count int) {
	globalManager.storedPlans.Set(float64(count))
}

// UpdateCoveragePercent sets the latest-plan coverage gauge.
func UpdateCoveragePercent(pct float64) {
	globalManager.coveragePercent.Set(pct)
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry for exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
