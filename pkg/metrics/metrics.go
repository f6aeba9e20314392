package metrics

import "time"

// Payment outcome labels.
const (
	OutcomePaid           = "paid"
	OutcomeDelayed        = "delayed"
	OutcomeResolvedByBank = "resolved_by_bank"
)

// RunStarted marks a simulation run as in flight.
func (r *Registry) RunStarted() {
	r.ActiveRuns.Inc()
}

// RecordRun records a completed simulation run and marks it no longer in
// flight. Bank-settled obligations arrive in the resolvedByBank count,
// separate from individually paid ones.
func (r *Registry) RecordRun(scenario, mode string, duration time.Duration, rounds, paid, resolvedByBank, delayed int, volumePaid, bankInjected, paymentRate float64, cyclesResolved int) {
	r.ActiveRuns.Dec()
	r.RunsTotal.WithLabelValues(scenario, mode).Inc()
	r.RunDuration.WithLabelValues(scenario, mode).Observe(duration.Seconds())
	r.PaymentRate.WithLabelValues(scenario, mode).Set(paymentRate)

	r.RoundsTotal.Add(float64(rounds))
	r.PaymentsTotal.WithLabelValues(OutcomePaid).Add(float64(paid))
	r.PaymentsTotal.WithLabelValues(OutcomeResolvedByBank).Add(float64(resolvedByBank))
	r.PaymentsTotal.WithLabelValues(OutcomeDelayed).Add(float64(delayed))
	r.VolumePaidTotal.Add(volumePaid)
	r.BankInjectedTotal.Add(bankInjected)
	r.CyclesResolvedTotal.Add(float64(cyclesResolved))
}

// UpdateNetwork publishes the structural gauges of the loaded network.
func (r *Registry) UpdateNetwork(companies, edges int, totalDebt float64) {
	r.NetworkCompanies.Set(float64(companies))
	r.NetworkEdges.Set(float64(edges))
	r.NetworkTotalDebt.Set(totalDebt)
}

// UpdateCycles publishes the cycle analysis gauges.
func (r *Registry) UpdateCycles(total, hubs, megaHubs int) {
	r.NetworkCycles.Set(float64(total))
	r.NetworkHubs.Set(float64(hubs))
	r.NetworkMegaHubs.Set(float64(megaHubs))
}
