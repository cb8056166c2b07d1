package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRoleMetrics() {
	r.ClusterRole = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repmgrd_node_role",
			Help: "This node's current role (1 for current role, 0 otherwise)",
		},
		[]string{"role"}, // primary, standby
	)
}
