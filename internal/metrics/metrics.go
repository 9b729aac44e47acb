// ============================================================================
// The Last Supper - Prometheus Metrics
// ============================================================================
//
// Package: internal/metrics
// File: metrics.go
// Purpose: Collect and expose simulation metrics for Prometheus scraping
//
// Metric families:
//
//   1. Counters (cumulative):
//      - philo_phase_transitions_total{phase}: one per emitted status line
//      - philo_meals_total: meals started across all philosophers
//      - philo_deaths_total: starvation deaths observed
//      - philo_runs_completed_total{outcome}: finished runs by classification
//
//   2. Gauges (instantaneous):
//      - philo_table_size: philosopher count of the current run
//      - philo_run_duration_seconds: wall time of the last completed run
//
// The simulation core never talks to Prometheus directly: the collector wraps
// the Reporter, so every metric is derived from the same event stream the
// user sees. The /metrics endpoint is served by StartServer when enabled.
//
// ============================================================================

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hosu-kim/the-last-supper/internal/report"
	"github.com/hosu-kim/the-last-supper/pkg/types"
)

// Collector holds the Prometheus metric families for one process.
type Collector struct {
	phaseTransitions *prometheus.CounterVec
	meals            prometheus.Counter
	deaths           prometheus.Counter
	runsCompleted    *prometheus.CounterVec
	tableSize        prometheus.Gauge
	runDuration      prometheus.Gauge
}

// NewCollector creates and registers all metric families.
func NewCollector() *Collector {
	c := &Collector{
		phaseTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "philo_phase_transitions_total",
			Help: "Total number of status lines emitted, by phase",
		}, []string{"phase"}),
		meals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "philo_meals_total",
			Help: "Total number of meals started across all philosophers",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "philo_deaths_total",
			Help: "Total number of starvation deaths observed",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "philo_runs_completed_total",
			Help: "Total number of completed runs, by outcome",
		}, []string{"outcome"}),
		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "philo_table_size",
			Help: "Philosopher count of the current run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "philo_run_duration_seconds",
			Help: "Wall-clock duration of the last completed run in seconds",
		}),
	}

	prometheus.MustRegister(c.phaseTransitions)
	prometheus.MustRegister(c.meals)
	prometheus.MustRegister(c.deaths)
	prometheus.MustRegister(c.runsCompleted)
	prometheus.MustRegister(c.tableSize)
	prometheus.MustRegister(c.runDuration)

	return c
}

// RecordPhase counts one emitted status line.
func (c *Collector) RecordPhase(message string) {
	c.phaseTransitions.WithLabelValues(message).Inc()
	switch message {
	case types.StatusEating:
		c.meals.Inc()
	case types.StatusDied:
		c.deaths.Inc()
	}
}

// RecordOutcome counts a finished run and stores its wall duration.
func (c *Collector) RecordOutcome(outcome types.Outcome, durationSeconds float64) {
	c.runsCompleted.WithLabelValues(string(outcome.Kind)).Inc()
	c.runDuration.Set(durationSeconds)
}

// SetTableSize publishes the philosopher count of the current run.
func (c *Collector) SetTableSize(n int) {
	c.tableSize.Set(float64(n))
}

// WrapReporter returns a reporter that counts every emission before passing
// it on to next.
func (c *Collector) WrapReporter(next report.Reporter) report.Reporter {
	return &instrumentedReporter{next: next, collector: c}
}

type instrumentedReporter struct {
	next      report.Reporter
	collector *Collector
}

func (r *instrumentedReporter) Emit(id types.PhilosopherID, timestampMS int64, message string) {
	r.collector.RecordPhase(message)
	r.next.Emit(id, timestampMS, message)
}

// StartServer starts the Prometheus metrics HTTP server on the given port.
// It blocks until the server fails.
func StartServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, nil)
}
