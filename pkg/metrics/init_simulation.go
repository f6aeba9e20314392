package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "liquigraph_runs_total",
			Help: "Total number of completed simulation runs",
		},
		[]string{"scenario", "mode"},
	)

	r.RoundsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "liquigraph_rounds_total",
			Help: "Total number of simulated rounds across all runs",
		},
	)

	r.PaymentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "liquigraph_payments_total",
			Help: "Total number of obligation decisions by outcome",
		},
		[]string{"outcome"},
	)

	r.VolumePaidTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "liquigraph_volume_paid_total",
			Help: "Total settled obligation volume",
		},
	)

	r.CyclesResolvedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "liquigraph_cycles_resolved_total",
			Help: "Total number of debt cycles settled by the clearing bank",
		},
	)

	r.BankInjectedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "liquigraph_bank_injected_total",
			Help: "Total liquidity injected by the clearing bank",
		},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "liquigraph_run_duration_seconds",
			Help:    "Simulation run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
		},
		[]string{"scenario", "mode"},
	)

	r.PaymentRate = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "liquigraph_payment_rate",
			Help: "Payment rate of the most recent run per scenario and mode",
		},
		[]string{"scenario", "mode"},
	)

	r.ActiveRuns = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_active_runs",
			Help: "Number of simulation runs currently executing",
		},
	)
}
