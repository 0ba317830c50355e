package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle status labels.
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
	StatusPanic = "panic"

	namespace = "signalsentinel"
)

// Recorder exposes polling loop counters on a Prometheus registry.
type Recorder struct {
	registry      *prometheus.Registry
	cycles        *prometheus.CounterVec
	signals       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	bars          prometheus.Gauge
}

// New creates a recorder backed by its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycles_total",
				Help:      "Polling cycles by outcome",
			},
			[]string{"status"},
		),
		signals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signals_total",
				Help:      "Signal lines reported by side. Every cycle re-reports the whole window, so a bar that stays signalled is counted once per cycle.",
			},
			[]string{"side"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of market data fetches in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		bars: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "bars_processed",
				Help:      "Resampled bars analysed in the last cycle",
			},
		),
	}
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordCycle counts one finished cycle.
func (r *Recorder) RecordCycle(status string) {
	r.cycles.WithLabelValues(status).Inc()
}

// RecordSignal counts one reported signal.
func (r *Recorder) RecordSignal(side string) {
	r.signals.WithLabelValues(side).Inc()
}

// RecordFetch records fetch latency in seconds.
func (r *Recorder) RecordFetch(seconds float64) {
	r.fetchDuration.Observe(seconds)
}

// SetBars records how many bars the last cycle analysed.
func (r *Recorder) SetBars(n int) {
	r.bars.Set(float64(n))
}
