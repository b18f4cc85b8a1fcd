package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()
	m.ResCountQueries.WithLabelValues("aws", "ok").Inc()
	m.ResCountQueries.WithLabelValues("aws", "ok").Inc()
	m.SyncTasks.WithLabelValues("tcloud", "success").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResCountQueries.WithLabelValues("aws", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncTasks.WithLabelValues("tcloud", "success")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{"workbench_res_count_queries_total", "workbench_sync_tasks_total"}, names)
}

func TestNewRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ResCountQueries.WithLabelValues("aws", "error").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ResCountQueries.WithLabelValues("aws", "error")))
}
