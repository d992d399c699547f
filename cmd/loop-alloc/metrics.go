package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

// prometheusMetrics exports loopctl counters so that a textfile collector can
// pick them up after a run.
type prometheusMetrics struct {
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
}

func newPrometheusMetrics() *prometheusMetrics {
	m := &prometheusMetrics{
		registry: prometheus.NewRegistry(),
		counters: map[string]prometheus.Counter{
			"loop_devices_created": prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "loopctl",
				Help:      "Number of loop devices created",
				Name:      "devices_created_total",
			}),
			"loop_devices_failed": prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "loopctl",
				Help:      "Number of loop devices that could not be created",
				Name:      "devices_failed_total",
			}),
		},
	}
	for _, counter := range m.counters {
		m.registry.MustRegister(counter)
	}
	return m
}

func (m *prometheusMetrics) CounterAdd(name string, value float64) {
	if counter, ok := m.counters[name]; ok {
		counter.Add(value)
	}
}

// WriteTextfile writes all counters in the text exposition format to path.
func (m *prometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
