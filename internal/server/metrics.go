package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the scoring service instruments
type Metrics struct {
	gamesScored prometheus.Counter
	rejected    *prometheus.CounterVec
	scores      prometheus.Histogram
	connections prometheus.Gauge
}

// NewMetrics creates the instruments and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gamesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tenpin",
			Name:      "games_scored_total",
			Help:      "Number of games scored successfully",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenpin",
			Name:      "games_rejected_total",
			Help:      "Number of games rejected, by error code",
		}, []string{"code"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tenpin",
			Name:      "game_score",
			Help:      "Distribution of final game scores",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tenpin",
			Name:      "websocket_connections",
			Help:      "Number of open websocket connections",
		}),
	}

	reg.MustRegister(m.gamesScored, m.rejected, m.scores, m.connections)
	return m
}

func (m *Metrics) observeScore(score int) {
	m.gamesScored.Inc()
	m.scores.Observe(float64(score))
}

func (m *Metrics) observeRejected(code string) {
	m.rejected.WithLabelValues(code).Inc()
}
