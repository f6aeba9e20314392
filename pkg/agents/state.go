// Package agents models the behavioral state of companies in a debt
// network: liquid capital, reputation and suspicion beliefs, and the
// pay-or-delay decision policy driven by them.
package agents

// InitialReputation is every company's reputation before any payment
// history exists.
const InitialReputation = 1.0

// Belief adjustment steps. Payment outcomes nudge beliefs by fixed
// amounts; both dimensions are clamped to [0, 1].
const (
	ReputationStep = 0.05
	SuspicionStep  = 0.05
)

// State is the mutable per-company simulation state.
type State struct {
	ID              uint64
	Capital         float64
	Reputation      float64
	Suspicion       float64
	PaymentsMade    int
	PaymentsDelayed int
	VolumePaid      float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
