package sim

import (
	"time"

	"github.com/dd0wney/liquigraph/pkg/cycles"
)

// RoundResult captures one round's aggregate outcomes.
type RoundResult struct {
	Round           int     `json:"round"`
	PaymentsMade    int     `json:"payments_made"`
	PaymentsDelayed int     `json:"payments_delayed"`
	ResolvedByBank  int     `json:"resolved_by_bank"`
	VolumePaid      float64 `json:"volume_paid"`
	CyclesResolved  int     `json:"cycles_resolved"`
	BankInjected    float64 `json:"bank_injected"`
	AvgReputation   float64 `json:"avg_reputation"`
	AvgSuspicion    float64 `json:"avg_suspicion"`
}

// PaymentRate returns the fraction of this round's obligations that were
// settled, bank settlements included.
func (r RoundResult) PaymentRate() float64 {
	total := r.PaymentsMade + r.PaymentsDelayed
	if total == 0 {
		return 0
	}
	return float64(r.PaymentsMade) / float64(total)
}

// Result is the complete outcome of one simulation run.
type Result struct {
	RunID    string `json:"run_id"`
	Scenario string `json:"scenario"`
	Mode     Mode   `json:"mode"`
	Rounds   int    `json:"rounds"`
	Seed     int64  `json:"seed"`

	Companies int `json:"companies"`
	Edges     int `json:"edges"`

	PaymentsMade    int     `json:"payments_made"`
	PaymentsDelayed int     `json:"payments_delayed"`
	ResolvedByBank  int     `json:"resolved_by_bank"`
	PaymentRate     float64 `json:"payment_rate"`
	TotalVolumePaid float64 `json:"total_volume_paid"`
	CyclesResolved  int     `json:"cycles_resolved"`
	BankInjected    float64 `json:"bank_injected"`

	AvgFinalReputation float64 `json:"avg_final_reputation"`
	AvgFinalSuspicion  float64 `json:"avg_final_suspicion"`
	AvgFinalCapital    float64 `json:"avg_final_capital"`

	CycleStats      cycles.Stats `json:"cycle_stats"`
	CyclesTruncated bool         `json:"cycles_truncated,omitempty"`

	History []RoundResult `json:"history,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Delta summarizes the effect of bank assistance between two runs of the
// same scenario and seed.
type Delta struct {
	Scenario        string  `json:"scenario"`
	PaymentRateGain float64 `json:"payment_rate_gain"`
	VolumeGain      float64 `json:"volume_gain"`
	CyclesResolved  int     `json:"cycles_resolved"`
	BankInjected    float64 `json:"bank_injected"`
}

// Compare derives the assisted-minus-unassisted delta for one scenario.
func Compare(unassisted, assisted *Result) Delta {
	return Delta{
		Scenario:        unassisted.Scenario,
		PaymentRateGain: assisted.PaymentRate - unassisted.PaymentRate,
		VolumeGain:      assisted.TotalVolumePaid - unassisted.TotalVolumePaid,
		CyclesResolved:  assisted.CyclesResolved,
		BankInjected:    assisted.BankInjected,
	}
}
