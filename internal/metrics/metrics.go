// Package metrics provides Prometheus metrics collection for baton builds.
//
// All recording methods are safe to call on a nil *Collector, so pipeline code
// can record unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build outcomes used as the "outcome" label.
const (
	OutcomeDone   = "done"
	OutcomeFailed = "failed"
)

// Collector holds all Prometheus metrics for baton.
type Collector struct {
	// Build metrics
	BuildsTotal    *prometheus.CounterVec
	BuildsInFlight prometheus.Gauge

	// Stage metrics
	StageDuration *prometheus.HistogramVec
	StageFailures *prometheus.CounterVec

	// Pipeline throughput
	ResourcesAssembled prometheus.Counter
	ProceduresApplied  prometheus.Counter
}

// NewWithRegistry creates a new metrics collector registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		BuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "baton",
				Name:      "builds_total",
				Help:      "Total number of finished builds by outcome",
			},
			[]string{"outcome"},
		),
		BuildsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "baton",
				Name:      "builds_in_flight",
				Help:      "Number of builds currently running",
			},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "baton",
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30, 120},
			},
			[]string{"stage"},
		),
		StageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "baton",
				Name:      "stage_failures_total",
				Help:      "Total number of builds that failed in each stage",
			},
			[]string{"stage"},
		),
		ResourcesAssembled: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "baton",
				Name:      "resources_assembled_total",
				Help:      "Total number of resource declarations produced by components",
			},
		),
		ProceduresApplied: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "baton",
				Name:      "procedures_applied_total",
				Help:      "Total number of procedures executed successfully",
			},
		),
	}
}

// BuildStarted marks a build as running.
func (c *Collector) BuildStarted() {
	if c == nil {
		return
	}
	c.BuildsInFlight.Inc()
}

// BuildFinished records the outcome of a build started with BuildStarted.
func (c *Collector) BuildFinished(outcome string) {
	if c == nil {
		return
	}
	c.BuildsInFlight.Dec()
	c.BuildsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long a stage took and whether it failed.
func (c *Collector) ObserveStage(stage string, d time.Duration, failed bool) {
	if c == nil {
		return
	}
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if failed {
		c.StageFailures.WithLabelValues(stage).Inc()
	}
}

// AddResources counts resource declarations produced by a component.
func (c *Collector) AddResources(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ResourcesAssembled.Add(float64(n))
}

// ProcedureApplied counts one successfully executed procedure.
func (c *Collector) ProcedureApplied() {
	if c == nil {
		return
	}
	c.ProceduresApplied.Inc()
}
