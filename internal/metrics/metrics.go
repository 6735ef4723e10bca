// Package metrics exports handler invocation metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"lambda-handler-factory/pkg/factory"
)

// Collector observes factory invocations
type Collector struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	steps       *prometheus.HistogramVec
}

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "handler_invocations_total", Help: "handler invocations by handler and outcome"},
			[]string{"handler", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "handler_duration_seconds",
				Help:    "handler chain duration.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "handler_chain_steps",
				Help:    "resolved chain length.",
				Buckets: []float64{1, 2, 3, 5, 8, 13},
			},
			[]string{"handler"},
		),
	}

	for _, collector := range []prometheus.Collector{c.invocations, c.duration, c.steps} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Observe implements factory.Observer
func (c *Collector) Observe(inv factory.Invocation) {
	outcome := "success"
	if inv.Err != nil {
		outcome = "error"
	}

	c.invocations.WithLabelValues(inv.Handler, outcome).Inc()
	c.duration.WithLabelValues(inv.Handler).Observe(inv.Duration.Seconds())
	c.steps.WithLabelValues(inv.Handler).Observe(float64(inv.Steps))
}
