package querycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit   = "hit"
	resultStale = "stale"
	resultMiss  = "miss"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics counts cache lookups and underlying fetches. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	lookups *prometheus.CounterVec
	fetches *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdash",
			Subsystem: "querycache",
			Name:      "lookups_total",
			Help:      "Cache lookups by result (hit, stale, miss).",
		}, []string{"result"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthdash",
			Subsystem: "querycache",
			Name:      "fetches_total",
			Help:      "Underlying fetches by outcome (ok, error).",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) fetch(outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
}
