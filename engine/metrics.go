package planengine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// planMetrics holds Prometheus metrics for translation operations.
type planMetrics struct {
	translations      *prometheus.CounterVec   // By mode and status (success/failure)
	translateDuration *prometheus.HistogramVec // By mode
	stagedArtifacts   prometheus.Gauge         // Size of the last resolved staging set
}

// newPlanMetrics creates and registers translation metrics with the
// provided registerer. A nil registerer disables metrics.
func newPlanMetrics(registry prometheus.Registerer) (*planMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &planMetrics{
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowplan",
			Subsystem: "translate",
			Name:      "translations_total",
			Help:      "Total number of pipeline translation calls",
		}, []string{"mode", "status"}), // status: success, failure

		translateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowplan",
			Subsystem: "translate",
			Name:      "duration_seconds",
			Help:      "Pipeline translation duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"mode"}),

		stagedArtifacts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flowplan",
			Subsystem: "staging",
			Name:      "artifacts",
			Help:      "Number of artifacts in the last resolved staging set",
		}),
	}

	if err := registry.Register(m.translations); err != nil {
		return nil, err
	}
	if err := registry.Register(m.translateDuration); err != nil {
		return nil, err
	}
	if err := registry.Register(m.stagedArtifacts); err != nil {
		return nil, err
	}

	return m, nil
}

// recordTranslate records a translation call.
func (m *planMetrics) recordTranslate(mode string, success bool, duration float64) {
	if m == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}

	m.translations.WithLabelValues(mode, status).Inc()
	m.translateDuration.WithLabelValues(mode).Observe(duration)
}

// recordStagedArtifacts records the size of the resolved staging set.
func (m *planMetrics) recordStagedArtifacts(count int) {
	if m == nil {
		return
	}
	m.stagedArtifacts.Set(float64(count))
}
