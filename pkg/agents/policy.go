package agents

import "math/rand"

// DefaultSensitivity weights the creditor's reputation in the delay
// decision. At the default, a spotless creditor offsets 0.1 suspicion.
const DefaultSensitivity = 0.1

// Decision is the outcome of one obligation decision.
type Decision uint8

const (
	// Pay settles the obligation this round.
	Pay Decision = iota
	// Delay withholds payment this round.
	Delay
)

func (d Decision) String() string {
	switch d {
	case Pay:
		return "pay"
	case Delay:
		return "delay"
	default:
		return "unknown"
	}
}

// Policy decides whether a debtor pays or delays an obligation. The
// delay chance grows with the debtor's own suspicion and shrinks with
// the creditor's reputation:
//
//	delayProbability = clamp(suspicion - sensitivity*creditorReputation, 0, 1)
//
// Sampling uses a dedicated seeded source, so runs with equal seeds and
// equal decision order reproduce exactly.
type Policy struct {
	sensitivity float64
	rng         *rand.Rand
}

// NewPolicy creates a decision policy. Non-positive sensitivity falls
// back to DefaultSensitivity.
func NewPolicy(sensitivity float64, seed int64) *Policy {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &Policy{
		sensitivity: sensitivity,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Sensitivity returns the reputation weight in use.
func (p *Policy) Sensitivity() float64 {
	return p.sensitivity
}

// DelayProbability computes the chance that a debtor with the given
// suspicion delays payment to a creditor with the given reputation.
func (p *Policy) DelayProbability(suspicion, creditorReputation float64) float64 {
	return clamp01(suspicion - p.sensitivity*creditorReputation)
}

// Decide resolves one obligation. A debtor whose available capital does
// not cover the amount always delays; otherwise the delay probability is
// sampled.
func (p *Policy) Decide(available, amount, suspicion, creditorReputation float64) Decision {
	if available < amount {
		return Delay
	}
	if p.rng.Float64() < p.DelayProbability(suspicion, creditorReputation) {
		return Delay
	}
	return Pay
}
