package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter is one of the demo counters.
type Counter int

const (
	// Steps counts the optimisation steps.
	Steps Counter = iota
	// Epochs counts the training epochs.
	Epochs
	// Restarts counts the random restarts.
	Restarts
	// Ticks counts the loop ticks.
	Ticks
)

// Observer is the global metrics collector.
var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Collectors()...)
}

// Metrics increments the demo counters.
type Metrics struct {
	prometheus Prometheus
}

func (m *Metrics) vec(c Counter) *prometheus.CounterVec {
	switch c {
	case Steps:
		return m.prometheus.Steps
	case Epochs:
		return m.prometheus.Epochs
	case Restarts:
		return m.prometheus.Restarts
	}
	return m.prometheus.Ticks
}

// Increment increments the counter of the given demo.
func (m *Metrics) Increment(c Counter, demo string) {
	m.vec(c).WithLabelValues(demo).Inc()
}

// Add adds the given amount to the counter of the demo.
func (m *Metrics) Add(c Counter, demo string, v int) {
	m.vec(c).WithLabelValues(demo).Add(float64(v))
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
