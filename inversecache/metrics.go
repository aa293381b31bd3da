package inversecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "ternary_index"
	metricsSubsystem = "inversecache"
)

type metrics struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	rebuilds prometheus.Histogram
}

// newMetrics registers on reg; a nil reg leaves the collectors unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "hits_total",
			Help:      "Inverse tables served from the cache",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "misses_total",
			Help:      "Inverse tables rebuilt on lookup",
		}),
		rebuilds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "rebuild_duration_seconds",
			Help:      "Time spent rebuilding an inverse table on a miss",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}),
	}
}
