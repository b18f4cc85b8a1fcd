// Package metrics registers the Prometheus collectors of the workbench.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry        *prometheus.Registry
	ResCountQueries *prometheus.CounterVec
	SyncTasks       *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ResCountQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workbench_res_count_queries_total",
			Help: "Resource count queries by vendor and outcome.",
		}, []string{"vendor", "outcome"}),
		SyncTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workbench_sync_tasks_total",
			Help: "Finished resource sync tasks by vendor and final state.",
		}, []string{"vendor", "state"}),
	}
	m.Registry.MustRegister(m.ResCountQueries, m.SyncTasks)
	return m
}
