package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNetworkMetrics() {
	r.NetworkCompanies = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_companies",
			Help: "Number of companies in the loaded network",
		},
	)

	r.NetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_edges",
			Help: "Number of debt obligations in the loaded network",
		},
	)

	r.NetworkTotalDebt = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_total_debt",
			Help: "Sum of all obligation amounts in the loaded network",
		},
	)

	r.NetworkCycles = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_cycles",
			Help: "Number of simple debt cycles enumerated in the network",
		},
	)

	r.NetworkHubs = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_hubs",
			Help: "Companies participating in at least five cycles",
		},
	)

	r.NetworkMegaHubs = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "liquigraph_network_mega_hubs",
			Help: "Companies participating in at least ten cycles",
		},
	)
}
