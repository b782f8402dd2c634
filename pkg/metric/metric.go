package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric groups the collectors the service exports.
type Metric struct {
	upstreamTime *prometheus.HistogramVec
	transitions  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metric {
	m := &Metric{
		upstreamTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skycast_upstream_request_seconds",
				Help:    "Histogram of provider round-trip times per endpoint.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skycast_session_transitions_total",
				Help: "Number of weather session transitions per target state.",
			},
			[]string{"state"},
		),
	}
	reg.MustRegister(m.upstreamTime, m.transitions)
	return m
}

func (m *Metric) ObserveUpstream(endpoint string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.upstreamTime.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

func (m *Metric) AddTransition(state string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state).Inc()
}

// TransitionsCollector exposes the transition counter for direct inspection.
func (m *Metric) TransitionsCollector() prometheus.Collector {
	return m.transitions
}
