package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/smartskin/internal/suitability"
)

// Metrics are the domain-level counters exported next to the HTTP ones.
type Metrics struct {
	predictions     *prometheus.CounterVec
	recommendations prometheus.Histogram
	degraded        *prometheus.GaugeVec
}

// NewMetrics registers the pipeline metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "smartskin",
				Name:      "predictions_total",
				Help:      "Suitability predictions by outcome",
			},
			[]string{"status"},
		),
		recommendations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "smartskin",
				Name:      "recommendations_returned",
				Help:      "Number of products returned per recommendation call",
				Buckets:   prometheus.LinearBuckets(0, 1, 9),
			},
		),
		degraded: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "smartskin",
				Name:      "degraded_mode",
				Help:      "1 when a component runs on stand-in data",
			},
			[]string{"component"},
		),
	}
	reg.MustRegister(m.predictions, m.recommendations, m.degraded)
	return m
}

func (m *Metrics) observePrediction(s suitability.Scores) {
	if m == nil {
		return
	}
	status := "ok"
	switch {
	case !s.OK():
		status = "error"
	case s.StandIn:
		status = "standin"
	}
	m.predictions.WithLabelValues(status).Inc()
}

func (m *Metrics) observeRecommendations(n int) {
	if m == nil {
		return
	}
	m.recommendations.Observe(float64(n))
}

func (m *Metrics) setDegraded(d Degraded) {
	if m == nil {
		return
	}
	for component, on := range d.components() {
		v := 0.0
		if on {
			v = 1
		}
		m.degraded.WithLabelValues(component).Set(v)
	}
}
