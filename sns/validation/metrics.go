package validation

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sns_validation_failures",
			Help: "Number of payloads rejected by the validator.",
		},
		[]string{"mode"},
	)
	validationSuccesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sns_validation_successes",
			Help: "Number of payloads accepted by the validator.",
		},
		[]string{"mode"},
	)
	validationDefects = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "sns_validation_defects",
			Help: "Number of distinct defects per validated payload.",
		},
		[]string{"mode"},
	)
	validationLatency = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "sns_validation_latency",
			Help: "Payload validation latency (seconds).",
		},
		[]string{"mode"},
	)

	validationCollectors = []prometheus.Collector{
		validationFailures,
		validationSuccesses,
		validationDefects,
		validationLatency,
	}

	metricsOnce sync.Once
)

func modeLabels(mode Mode) prometheus.Labels {
	return prometheus.Labels{"mode": mode.String()}
}

func initMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(validationCollectors...)
	})
}

func observe(mode Mode, defects int, elapsed time.Duration) {
	initMetrics()

	labels := modeLabels(mode)
	validationLatency.With(labels).Observe(elapsed.Seconds())
	validationDefects.With(labels).Observe(float64(defects))
	if defects > 0 {
		validationFailures.With(labels).Inc()
		return
	}
	validationSuccesses.With(labels).Inc()
}
