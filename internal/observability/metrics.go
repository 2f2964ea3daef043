package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "incident_service"

// Metrics holds the Prometheus collectors for incident operations.
type Metrics struct {
	Operations          *prometheus.CounterVec   // labels: operation, outcome
	OperationDuration   *prometheus.HistogramVec // labels: operation
	RejectedTransitions *prometheus.CounterVec   // labels: field
	EventsPublished     *prometheus.CounterVec   // labels: type, result
	IncidentsByStatus   *prometheus.GaugeVec     // labels: status
	WebhookDeliveries   *prometheus.CounterVec   // labels: result
}

func newMetrics() *Metrics {
	return &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Incident operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of incident operations including store I/O.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		RejectedTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_transitions_total",
			Help:      "Status updates rejected by the forward-only state machines.",
		}, []string{"field"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Incident events handed to the notification sink.",
		}, []string{"type", "result"}),
		IncidentsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents",
			Help:      "Stored incidents per incident_status, refreshed by the snapshot job.",
		}, []string{"status"}),
		WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Queued incident events by webhook outcome: delivered, dead_letter or skipped.",
		}, []string{"result"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Operations,
		m.OperationDuration,
		m.RejectedTransitions,
		m.EventsPublished,
		m.IncidentsByStatus,
		m.WebhookDeliveries,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
