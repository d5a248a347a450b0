package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Session metrics
	SessionTransitions *prometheus.CounterVec
	GuardDecisions     *prometheus.CounterVec

	// Identity service metrics
	IdentityOperations *prometheus.CounterVec
	IdentityLatency    *prometheus.HistogramVec

	// Token storage metrics
	StorageOperations *prometheus.CounterVec
}

// New creates the application metrics and registers them with reg.
// Passing a fresh prometheus.NewRegistry() keeps tests isolated.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
		}, []string{"method", "path", "status"}),
		RequestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "path", "type"}),

		SessionTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Session state transitions by event",
		}, []string{"event", "to"}),
		GuardDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "guard_decisions_total",
			Help:      "Route guard outcomes",
		}, []string{"decision"}),

		IdentityOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "operations_total",
			Help:      "Identity service calls by operation and outcome",
		}, []string{"operation", "status"}),
		IdentityLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "operation_duration_seconds",
			Help:      "Duration of identity service calls, simulated latency included",
			Buckets:   []float64{.001, .01, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		StorageOperations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token_storage",
			Name:      "operations_total",
			Help:      "Token storage backend operations",
		}, []string{"backend", "operation", "status"}),
	}
}
