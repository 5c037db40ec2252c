package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/specialistvlad/baton/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gather returns the metric family called name from reg.
func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func TestBuildLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.BuildStarted()
	m.BuildStarted()
	m.BuildFinished(metrics.OutcomeDone)
	m.BuildFinished(metrics.OutcomeFailed)

	inFlight := gather(t, reg, "baton_builds_in_flight")
	require.NotNil(t, inFlight)
	assert.Equal(t, 0.0, inFlight.GetMetric()[0].GetGauge().GetValue())

	total := gather(t, reg, "baton_builds_total")
	require.NotNil(t, total)
	got := map[string]float64{}
	for _, metric := range total.GetMetric() {
		got[labelValue(metric, "outcome")] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"done": 1, "failed": 1}, got)
}

func TestObserveStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.ObserveStage("compile", 10*time.Millisecond, false)
	m.ObserveStage("apply", time.Second, true)

	durations := gather(t, reg, "baton_stage_duration_seconds")
	require.NotNil(t, durations)
	assert.Len(t, durations.GetMetric(), 2)

	failures := gather(t, reg, "baton_stage_failures_total")
	require.NotNil(t, failures)
	require.Len(t, failures.GetMetric(), 1)
	assert.Equal(t, "apply", labelValue(failures.GetMetric()[0], "stage"))
}

func TestThroughputCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.AddResources(3)
	m.AddResources(0)
	m.ProcedureApplied()

	assert.Equal(t, 3.0, gather(t, reg, "baton_resources_assembled_total").GetMetric()[0].GetCounter().GetValue())
	assert.Equal(t, 1.0, gather(t, reg, "baton_procedures_applied_total").GetMetric()[0].GetCounter().GetValue())
}

func TestNilCollectorIsNoop(t *testing.T) {
	var m *metrics.Collector
	assert.NotPanics(t, func() {
		m.BuildStarted()
		m.BuildFinished(metrics.OutcomeDone)
		m.ObserveStage("apply", time.Second, true)
		m.AddResources(1)
		m.ProcedureApplied()
	})
}
