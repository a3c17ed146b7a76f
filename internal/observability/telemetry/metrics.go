package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	// Business metrics
	AnalysisRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_analysis_requests_total",
		Help: "Analysis requests by tab and outcome",
	}, []string{"tab", "status"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clinic_analysis_duration_seconds",
		Help:    "End-to-end analysis latency, narrative included",
		Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120, 180},
	}, []string{"tab"})

	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_chat_requests_total",
		Help: "Chat requests by outcome",
	}, []string{"status"})

	ProfileOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_profile_operations_total",
		Help: "Profile store operations by kind and outcome",
	}, []string{"operation", "status"})

	// Narrative provider metrics
	NarrativeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_narrative_requests_total",
		Help: "Narrative generation calls by provider and outcome",
	}, []string{"provider", "outcome"})

	NarrativeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clinic_narrative_latency_seconds",
		Help:    "Narrative generation latency",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
	}, []string{"provider"})

	NarrativeBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "clinic_narrative_breaker_state",
		Help: "Narrative circuit breaker state (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})
)

// RecordBreakerState matches circuitbreaker.OnStateChange.
func RecordBreakerState(name string, _, to gobreaker.State) {
	NarrativeBreakerState.WithLabelValues(name).Set(float64(to))
}
