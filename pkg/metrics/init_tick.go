package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTickMetrics() {
	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "repmgrd_tick_duration_seconds",
			Help:    "Duration of one monitoring tick (reconnect check, lag report)",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 3.0, 10.0},
		},
	)

	r.ReceiveLagBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "repmgrd_receive_lag_bytes",
			Help: "Bytes between primary's current LSN and this standby's last received LSN",
		},
	)

	r.ApplyLagBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "repmgrd_apply_lag_bytes",
			Help: "Bytes between this standby's last received LSN and its last replayed LSN",
		},
	)

	r.ReconnectAttemptsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "repmgrd_reconnect_attempts_total",
			Help: "Total number of primary reconnect attempts made by the reconnect ladder",
		},
	)

	r.PrimaryConnectionUp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "repmgrd_primary_connection_up",
			Help: "Whether this daemon currently holds a live primary connection (1=yes, 0=no)",
		},
	)
}
