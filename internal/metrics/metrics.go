package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface consumed by handlers and middleware.
// Implementations must be safe for concurrent use.
type Recorder interface {
	RecordSignup(success bool)
	RecordLogin(authSource string, success bool)
	RecordLogout()
	RecordOAuthCallback(provider string, success bool)
	RecordHTTPRequest(method, path, status string, durationSeconds float64)
	HTTPInFlightInc()
	HTTPInFlightDec()
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	SignupsTotal           *prometheus.CounterVec
	AuthLoginTotal         *prometheus.CounterVec
	AuthLogoutTotal        prometheus.Counter
	AuthOAuthCallbackTotal *prometheus.CounterVec

	// Session Metrics
	SessionsCreatedTotal prometheus.Counter

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	return &Metrics{
		SignupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_signups_total",
				Help: "Total number of registration attempts",
			},
			[]string{"result"}, // success, failure
		),
		AuthLoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_logins_total",
				Help: "Total number of login attempts by auth source",
			},
			[]string{"auth_source", "result"},
		),
		AuthLogoutTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_logouts_total",
				Help: "Total number of logouts",
			},
		),
		AuthOAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_callbacks_total",
				Help: "Total number of OAuth callback completions",
			},
			[]string{"provider", "result"},
		),
		SessionsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_sessions_created_total",
				Help: "Total number of sessions established",
			},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of in-flight HTTP requests",
			},
		),
	}
}

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

func boolResult(success bool) string {
	if success {
		return resultSuccess
	}
	return resultFailure
}

// RecordSignup records a registration attempt
func (m *Metrics) RecordSignup(success bool) {
	m.SignupsTotal.WithLabelValues(boolResult(success)).Inc()
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(authSource string, success bool) {
	m.AuthLoginTotal.WithLabelValues(authSource, boolResult(success)).Inc()
	if success {
		m.SessionsCreatedTotal.Inc()
	}
}

// RecordLogout records a logout
func (m *Metrics) RecordLogout() {
	m.AuthLogoutTotal.Inc()
}

// RecordOAuthCallback records an OAuth callback completion
func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	m.AuthOAuthCallbackTotal.WithLabelValues(provider, boolResult(success)).Inc()
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// HTTPInFlightInc increments the in-flight request gauge
func (m *Metrics) HTTPInFlightInc() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTPInFlightDec decrements the in-flight request gauge
func (m *Metrics) HTTPInFlightDec() {
	m.HTTPRequestsInFlight.Dec()
}
