// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus instrumentation for simulation runs
// and dataset administration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Simulation outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeZeroSeats = "zero_seats"
	OutcomeError     = "error"
)

// Metrics tracks simulation counts, warnings and durations.
type Metrics struct {
	Simulations         *prometheus.CounterVec
	Warnings            *prometheus.CounterVec
	SimulationDuration  prometheus.Histogram
	SeatsAllocated      prometheus.Histogram
	DatasetReplacements prometheus.Counter
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer to
// expose them through the global handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Simulations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seatsim_simulations_total",
			Help: "Total number of simulations by outcome",
		}, []string{"outcome"}),
		Warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "seatsim_warnings_total",
			Help: "Total number of simulation warnings by kind",
		}, []string{"kind"}),
		SimulationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "seatsim_simulation_duration_seconds",
			Help:    "Duration of a full simulation run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SeatsAllocated: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "seatsim_seats_allocated",
			Help:    "Total seats allocated per successful simulation",
			Buckets: prometheus.LinearBuckets(0, 100, 9),
		}),
		DatasetReplacements: factory.NewCounter(prometheus.CounterOpts{
			Name: "seatsim_dataset_replacements_total",
			Help: "Total number of baseline dataset replacements",
		}),
	}
}

// IncrementSimulation records a finished simulation with its outcome.
func (m *Metrics) IncrementSimulation(outcome string) {
	m.Simulations.WithLabelValues(outcome).Inc()
}

// IncrementWarning records one warning of the given kind.
func (m *Metrics) IncrementWarning(kind string) {
	m.Warnings.WithLabelValues(kind).Inc()
}

// ObserveSimulation records the duration of a simulation.
// Call with time.Now() at the start of the run.
func (m *Metrics) ObserveSimulation(start time.Time) {
	m.SimulationDuration.Observe(time.Since(start).Seconds())
}

// ObserveSeats records the seat total of a successful simulation.
func (m *Metrics) ObserveSeats(total int) {
	m.SeatsAllocated.Observe(float64(total))
}

// IncrementDatasetReplaced records a successful dataset replacement.
func (m *Metrics) IncrementDatasetReplaced() {
	m.DatasetReplacements.Inc()
}
