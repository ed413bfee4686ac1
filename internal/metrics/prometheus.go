package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the counters of the demos.
type Prometheus struct {
	Steps    *prometheus.CounterVec
	Epochs   *prometheus.CounterVec
	Restarts *prometheus.CounterVec
	Ticks    *prometheus.CounterVec
}

func counter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mlviz",
			Name:      name,
			Help:      help,
		}, []string{"demo"})
}

// NewPrometheusMetrics creates the demo counters.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Steps:    counter("steps", "optimisation steps"),
		Epochs:   counter("epochs", "training epochs"),
		Restarts: counter("restarts", "random restarts"),
		Ticks:    counter("ticks", "loop ticks"),
	}
}

// Collectors returns all the counters.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Steps, p.Epochs, p.Restarts, p.Ticks}
}
