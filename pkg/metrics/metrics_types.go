package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric the daemon exposes, grouped by the
// component that owns them.
type Registry struct {
	// Tick / monitoring loop (pkg/monitor, pkg/supervisor)
	TickDuration        prometheus.Histogram
	ReceiveLagBytes     prometheus.Gauge
	ApplyLagBytes       prometheus.Gauge
	ReconnectAttemptsTotal prometheus.Counter
	PrimaryConnectionUp prometheus.Gauge

	// Failover election (pkg/election)
	ElectionsTotal   *prometheus.CounterVec
	ElectionDuration prometheus.Histogram

	// Node role (pkg/orchestrator)
	ClusterRole *prometheus.GaugeVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry builds a fresh registry with every series pre-registered,
// used both by DefaultRegistry and by tests that want isolation.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initTickMetrics()
	r.initElectionMetrics()
	r.initRoleMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry, for
// wiring into an HTTP handler on metrics_listen_addr.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
