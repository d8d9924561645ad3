// Package telemetry exposes the movement engine's runtime health as
// Prometheus metrics: tick timing, per-state agent population, flock
// count, live nav-blocker refcounts, and how often ClearPath actually had
// to deflect an agent's preferred velocity.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors the tick driver and engine update every
// tick. Construct with New and register with a prometheus.Registerer
// (typically prometheus.DefaultRegisterer, via Register).
type Metrics struct {
	TickDuration       prometheus.Histogram
	AgentsByState      *prometheus.GaugeVec
	FlockCount         prometheus.Gauge
	ActiveBlockers     prometheus.Gauge
	ClearPathDeflected prometheus.Counter
}

// New constructs an unregistered Metrics set.
func New(namespace string) *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "movement",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock time spent processing one 20Hz movement tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		AgentsByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "movement",
			Name:      "agents",
			Help:      "Number of agents currently in each motion state.",
		}, []string{"state"}),
		FlockCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "movement",
			Name:      "flocks",
			Help:      "Number of live flocks.",
		}),
		ActiveBlockers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "movement",
			Name:      "nav_blockers_active",
			Help:      "Number of agents currently holding a nav blocker refcount.",
		}),
		ClearPathDeflected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "movement",
			Name:      "clearpath_deflections_total",
			Help:      "Number of per-agent tick updates in which ClearPath returned a velocity different from vpref.",
		}),
	}
}

// Register adds every collector in m to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.TickDuration, m.AgentsByState, m.FlockCount,
		m.ActiveBlockers, m.ClearPathDeflected,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
