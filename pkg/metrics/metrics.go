package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoMatch = "no_match"
	OutcomeLocked  = "locked"
)

// Metrics holds all application metrics
type Metrics struct {
	Registry *prometheus.Registry

	// Service level metrics
	Operations *prometheus.CounterVec

	// Database metrics
	StoreOperations *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec

	// Authentication metrics
	LoginAttempts *prometheus.CounterVec

	// Side channel metrics
	EventsPublished *prometheus.CounterVec
}

// NewMetrics creates all application metrics on a private registry
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of role-gated operations by entity, operation and outcome",
		}, []string{"entity", "operation", "outcome"}),
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of repository round trips",
		}, []string{"operation", "outcome"}),
		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in a repository round trip",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Lifecycle events handed to the broker",
		}, []string{"type", "outcome"}),
	}
}

// ObserveOperation records the outcome of a service operation.
func (m *Metrics) ObserveOperation(entity, operation string, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(entity, operation, outcome(err)).Inc()
}

// ObserveStore records a repository round trip.
func (m *Metrics) ObserveStore(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.StoreOperations.WithLabelValues(operation, outcome(err)).Inc()
	m.StoreLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(eventType, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
