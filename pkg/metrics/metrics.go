package metrics

import (
	"time"
)

// RecordTick observes the duration of one monitoring tick.
func (r *Registry) RecordTick(duration time.Duration) {
	r.TickDuration.Observe(duration.Seconds())
}

// SetLag updates the receive/apply lag gauges from a tick's measurement.
func (r *Registry) SetLag(receiveLagBytes, applyLagBytes uint64) {
	r.ReceiveLagBytes.Set(float64(receiveLagBytes))
	r.ApplyLagBytes.Set(float64(applyLagBytes))
}

// RecordReconnectAttempt increments the reconnect ladder's attempt count.
func (r *Registry) RecordReconnectAttempt() {
	r.ReconnectAttemptsTotal.Inc()
}

// SetPrimaryConnectionUp records whether the primary session is currently live.
func (r *Registry) SetPrimaryConnectionUp(up bool) {
	if up {
		r.PrimaryConnectionUp.Set(1)
	} else {
		r.PrimaryConnectionUp.Set(0)
	}
}

// RecordElection records the outcome and duration of a completed election.
// result is one of "promoted", "followed", "quorum_lost".
func (r *Registry) RecordElection(result string, duration time.Duration) {
	r.ElectionsTotal.WithLabelValues(result).Inc()
	r.ElectionDuration.Observe(duration.Seconds())
}

// SetRole sets the current node role, zeroing the other known roles so
// exactly one series reads 1 at a time.
func (r *Registry) SetRole(role string) {
	r.ClusterRole.WithLabelValues("primary").Set(0)
	r.ClusterRole.WithLabelValues("standby").Set(0)
	r.ClusterRole.WithLabelValues(role).Set(1)
}
