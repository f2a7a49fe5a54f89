package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "techcorp").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "techcorp",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the site's Prometheus collectors.
type Metrics struct {
	config MetricsConfig

	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	contactTransitions *prometheus.CounterVec
	contactSubmissions *prometheus.CounterVec
	activeSessions     prometheus.Gauge
	sessionEvictions   *prometheus.CounterVec
	liveConnections    prometheus.Gauge
	wsErrors           *prometheus.CounterVec
	rateLimited        prometheus.Counter
}

// NewMetrics creates and registers the site metrics. It panics if the
// collectors are already registered with the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		config: config,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route", "method"}),

		contactTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "contact_transitions_total",
			Help:        "Contact form submission phase transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"from", "to"}),

		contactSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "contact_submissions_total",
			Help:        "Contact form submit attempts by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of live visitor sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionEvictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "session_evictions_total",
			Help:        "Visitor sessions dropped by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Open contact form websocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rate_limited_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Handler records request count and latency. The route label is chi's
// route pattern so path parameters do not explode cardinality.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RecordTransition counts a contact form phase change.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.contactTransitions.WithLabelValues(from, to).Inc()
}

// RecordSubmit counts a submit attempt by outcome (ignored, invalid, started).
func (m *Metrics) RecordSubmit(outcome string) {
	if m == nil {
		return
	}
	m.contactSubmissions.WithLabelValues(outcome).Inc()
}

// SetActiveSessions reports the number of live sessions.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

// RecordEviction counts a dropped session.
func (m *Metrics) RecordEviction(reason string) {
	if m == nil {
		return
	}
	m.sessionEvictions.WithLabelValues(reason).Inc()
}

// LiveOpened records a websocket connection being established.
func (m *Metrics) LiveOpened() {
	if m == nil {
		return
	}
	m.liveConnections.Inc()
}

// LiveClosed records a websocket connection ending.
func (m *Metrics) LiveClosed() {
	if m == nil {
		return
	}
	m.liveConnections.Dec()
}

// RecordWebSocketError counts a websocket error, categorised to keep label
// cardinality bounded.
func (m *Metrics) RecordWebSocketError(err error) {
	if m == nil || err == nil {
		return
	}
	m.wsErrors.WithLabelValues(categorizeError(err)).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// categorizeError returns a category for the error type.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "rate limit"):
		return "rate_limit"
	case strings.Contains(msg, "close"):
		return "closed"
	case strings.Contains(msg, "json"), strings.Contains(msg, "invalid"):
		return "protocol"
	default:
		return "internal"
	}
}
