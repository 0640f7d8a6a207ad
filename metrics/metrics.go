// Package metrics exposes the Prometheus collectors of the balance service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mtn"

// Attempt outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// Recorder groups the collectors. A nil *Recorder records nothing.
type Recorder struct {
	attempts       *prometheus.CounterVec
	extractions    *prometheus.CounterVec
	browsersActive prometheus.Gauge
	runDuration    prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Pipeline attempts by outcome.",
		}, []string{"outcome"}),
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Completed extractions by method; method=\"none\" counts misses.",
		}, []string{"method"}),
		browsersActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "browsers_active",
			Help:      "Browser processes currently running.",
		}),
		runDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a balance lookup including retries.",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90, 120},
		}),
	}
}

func (r *Recorder) Attempt(outcome string) {
	if r == nil {
		return
	}
	r.attempts.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Extraction(method string) {
	if r == nil {
		return
	}
	r.extractions.WithLabelValues(method).Inc()
}

func (r *Recorder) BrowserStarted() {
	if r == nil {
		return
	}
	r.browsersActive.Inc()
}

func (r *Recorder) BrowserStopped() {
	if r == nil {
		return
	}
	r.browsersActive.Dec()
}

func (r *Recorder) RunFinished(d time.Duration) {
	if r == nil {
		return
	}
	r.runDuration.Observe(d.Seconds())
}
