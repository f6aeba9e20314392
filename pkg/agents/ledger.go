package agents

import (
	"math/rand"

	"github.com/dd0wney/liquigraph/pkg/network"
)

// Ledger tracks the behavioral state of every company in one simulation
// run. It is not safe for concurrent use; parallel runs clone their own.
type Ledger struct {
	net    *network.Network
	states map[uint64]*State
}

// NewLedger initializes company state from the network: capital from the
// company record, reputation at InitialReputation and suspicion at the
// scenario base level.
func NewLedger(n *network.Network, baseSuspicion float64) *Ledger {
	return NewLedgerJittered(n, baseSuspicion, 0, nil)
}

// NewLedgerJittered spreads initial suspicion uniformly within ±jitter
// of the base level, clamped to [0, 1]. A nil rng or zero jitter yields
// the uniform base.
func NewLedgerJittered(n *network.Network, baseSuspicion, jitter float64, rng *rand.Rand) *Ledger {
	l := &Ledger{
		net:    n,
		states: make(map[uint64]*State, n.CompanyCount()),
	}
	for _, id := range n.CompanyIDs() {
		c, _ := n.Company(id)
		suspicion := baseSuspicion
		if rng != nil && jitter > 0 {
			suspicion += (rng.Float64()*2 - 1) * jitter
		}
		l.states[id] = &State{
			ID:         id,
			Capital:    c.Capital,
			Reputation: InitialReputation,
			Suspicion:  clamp01(suspicion),
		}
	}
	return l
}

// Clone deep-copies the ledger so concurrent runs can diverge. The
// underlying network is immutable and stays shared.
func (l *Ledger) Clone() *Ledger {
	states := make(map[uint64]*State, len(l.states))
	for id, s := range l.states {
		copied := *s
		states[id] = &copied
	}
	return &Ledger{net: l.net, states: states}
}

// State returns the live state for a company, or nil if unknown.
func (l *Ledger) State(id uint64) *State {
	return l.states[id]
}

// States returns every company state in ascending ID order.
func (l *Ledger) States() []*State {
	out := make([]*State, 0, len(l.states))
	for _, id := range l.net.CompanyIDs() {
		out = append(out, l.states[id])
	}
	return out
}

// Beliefs is a point-in-time copy of every company's reputation and
// suspicion. Round decisions read the snapshot taken at round start, so
// belief updates triggered mid-round cannot influence decisions within
// the same round.
type Beliefs struct {
	Reputation map[uint64]float64
	Suspicion  map[uint64]float64
}

// Snapshot captures current beliefs.
func (l *Ledger) Snapshot() Beliefs {
	b := Beliefs{
		Reputation: make(map[uint64]float64, len(l.states)),
		Suspicion:  make(map[uint64]float64, len(l.states)),
	}
	for id, s := range l.states {
		b.Reputation[id] = s.Reputation
		b.Suspicion[id] = s.Suspicion
	}
	return b
}

// Debit removes amount from a company's liquid capital.
func (l *Ledger) Debit(id uint64, amount float64) {
	l.states[id].Capital -= amount
}

// Credit adds amount to a company's liquid capital.
func (l *Ledger) Credit(id uint64, amount float64) {
	l.states[id].Capital += amount
}

// RecordPayment applies the belief and counter effects of a settled
// obligation: the debtor's reputation rises and the paid creditor
// relaxes. Capital movement is handled separately so receipts can be
// deferred to round end.
func (l *Ledger) RecordPayment(debtor, creditor uint64, amount float64) {
	d := l.states[debtor]
	d.Reputation = clamp01(d.Reputation + ReputationStep)
	d.PaymentsMade++
	d.VolumePaid += amount

	c := l.states[creditor]
	c.Suspicion = clamp01(c.Suspicion - SuspicionStep)
}

// RecordDelay applies the effects of a delayed obligation: the debtor's
// reputation drops and every creditor of the debtor grows more
// suspicious, not just the one left waiting.
func (l *Ledger) RecordDelay(debtor uint64) {
	d := l.states[debtor]
	d.Reputation = clamp01(d.Reputation - ReputationStep)
	d.PaymentsDelayed++

	for _, creditor := range l.net.Successors(debtor) {
		c := l.states[creditor]
		c.Suspicion = clamp01(c.Suspicion + SuspicionStep)
	}
}

// Summary aggregates final ledger state for reporting.
type Summary struct {
	PaymentsMade    int
	PaymentsDelayed int
	VolumePaid      float64
	AvgReputation   float64
	AvgSuspicion    float64
	AvgCapital      float64
}

// Summarize folds every company state into totals and means.
func (l *Ledger) Summarize() Summary {
	var s Summary
	for _, st := range l.states {
		s.PaymentsMade += st.PaymentsMade
		s.PaymentsDelayed += st.PaymentsDelayed
		s.VolumePaid += st.VolumePaid
		s.AvgReputation += st.Reputation
		s.AvgSuspicion += st.Suspicion
		s.AvgCapital += st.Capital
	}
	count := float64(len(l.states))
	s.AvgReputation /= count
	s.AvgSuspicion /= count
	s.AvgCapital /= count
	return s
}
