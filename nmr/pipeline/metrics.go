package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts pipeline activity. A nil *Metrics records nothing.
type Metrics struct {
	commits         *prometheus.CounterVec
	replays         prometheus.Counter
	previews        *prometheus.CounterVec
	previewDuration prometheus.Histogram
	rejected        *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		commits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nmr_pipeline_commits_total",
			Help: "Filters committed to a chain, by filter name",
		}, []string{"filter"}),
		replays: f.NewCounter(prometheus.CounterOpts{
			Name: "nmr_pipeline_replays_total",
			Help: "Chain replays from pristine data",
		}),
		previews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nmr_pipeline_previews_total",
			Help: "Live preview computations, by filter name",
		}, []string{"filter"}),
		previewDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nmr_pipeline_preview_duration_seconds",
			Help:    "Duration of one live preview computation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nmr_pipeline_rejected_total",
			Help: "Commands rejected before mutation, by command",
		}, []string{"command"}),
	}
}

func (m *Metrics) commit(filter string) {
	if m != nil {
		m.commits.WithLabelValues(filter).Inc()
	}
}

func (m *Metrics) replay() {
	if m != nil {
		m.replays.Inc()
	}
}

func (m *Metrics) preview(filter string) *prometheus.Timer {
	if m == nil {
		return prometheus.NewTimer(prometheus.ObserverFunc(func(float64) {}))
	}

	m.previews.WithLabelValues(filter).Inc()

	return prometheus.NewTimer(m.previewDuration)
}

func (m *Metrics) reject(command string) {
	if m != nil {
		m.rejected.WithLabelValues(command).Inc()
	}
}
