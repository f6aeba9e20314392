// Package metrics exposes simulation and network telemetry through a
// Prometheus registry. Sweeps record per-run outcomes; long-lived
// processes scrape the registry over HTTP.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application.
type Registry struct {
	// Simulation metrics
	RunsTotal           *prometheus.CounterVec
	RoundsTotal         prometheus.Counter
	PaymentsTotal       *prometheus.CounterVec
	VolumePaidTotal     prometheus.Counter
	CyclesResolvedTotal prometheus.Counter
	BankInjectedTotal   prometheus.Counter
	RunDuration         *prometheus.HistogramVec
	PaymentRate         *prometheus.GaugeVec
	ActiveRuns          prometheus.Gauge

	// Network metrics
	NetworkCompanies prometheus.Gauge
	NetworkEdges     prometheus.Gauge
	NetworkTotalDebt prometheus.Gauge
	NetworkCycles    prometheus.Gauge
	NetworkHubs      prometheus.Gauge
	NetworkMegaHubs  prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initSimulationMetrics()
	r.initNetworkMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
