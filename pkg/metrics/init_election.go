package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initElectionMetrics() {
	r.ElectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "repmgrd_elections_total",
			Help: "Total number of failover elections run by this daemon",
		},
		[]string{"result"}, // promoted, followed, quorum_lost
	)

	r.ElectionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "repmgrd_election_duration_seconds",
			Help:    "Wall-clock duration of a failover election from trigger to action",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
	)
}
