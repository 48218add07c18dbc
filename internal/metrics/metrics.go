package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for analyses_total.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Capability labels for capability_unavailable_total.
const (
	CapabilityExplanation  = "explanation"
	CapabilityOptimization = "optimization"
	CapabilityEfficiency   = "efficiency"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphq_tutor",
			Name:      "analyses_total",
			Help:      "Total number of analysis requests handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "graphq_tutor",
			Name:      "analysis_seconds",
			Help:      "Analysis request latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	capabilityUnavailableTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphq_tutor",
			Name:      "capability_unavailable_total",
			Help:      "Upstream capability calls that degraded to defaults, partitioned by capability.",
		},
		[]string{"capability"},
	)

	fallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "graphq_tutor",
			Name:      "fallbacks_total",
			Help:      "Analyses served from the fixed fallback because the backend was unreachable.",
		},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		capabilityUnavailableTotal,
		fallbacksTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records one handled analysis request.
func ObserveAnalysis(duration time.Duration, outcome string) {
	analysesTotal.WithLabelValues(outcome).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// CapabilityUnavailable records a per-capability degradation.
func CapabilityUnavailable(capability string) {
	capabilityUnavailableTotal.WithLabelValues(capability).Inc()
}

// FallbackServed records an analysis answered by the fixed fallback.
func FallbackServed() {
	fallbacksTotal.Inc()
}
