package sim

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/liquigraph/pkg/agents"
	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/logging"
	"github.com/dd0wney/liquigraph/pkg/network"
)

// Engine plays the settlement game on one network with one
// configuration. Engines are single-run and single-goroutine; a sweep
// builds one engine per scenario/mode pair.
type Engine struct {
	net    *network.Network
	cfg    Config
	cycles *cycles.Set
	policy *agents.Policy
	ledger *agents.Ledger

	statuses  map[uint64]network.EdgeStatus
	truncated bool
	done      bool
}

// NewEngine validates the configuration, enumerates cycles once and
// seeds the behavioral state. A truncated enumeration is logged and the
// run proceeds on the partial set; cycle counts then undercount.
func NewEngine(n *network.Network, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := cycles.EnumerateWithOptions(n, cfg.Cycles)
	truncated := false
	if err != nil {
		if !errors.Is(err, cycles.ErrEnumerationLimit) {
			return nil, err
		}
		truncated = true
		logging.Warn("cycle enumeration truncated",
			logging.Component("sim"),
			logging.Scenario(cfg.Scenario),
			logging.Count(set.Len()),
			logging.Error(err))
	}

	var jitterRng *rand.Rand
	if cfg.SuspicionJitter > 0 {
		jitterRng = rand.New(rand.NewSource(cfg.Seed))
	}

	statuses := make(map[uint64]network.EdgeStatus, n.EdgeCount())
	for _, e := range n.Edges() {
		statuses[e.ID] = network.StatusPending
	}

	return &Engine{
		net:       n,
		cfg:       cfg,
		cycles:    set,
		policy:    agents.NewPolicy(cfg.Sensitivity, cfg.Seed),
		ledger:    agents.NewLedgerJittered(n, cfg.BaseSuspicion, cfg.SuspicionJitter, jitterRng),
		statuses:  statuses,
		truncated: truncated,
	}, nil
}

// Cycles exposes the enumerated cycle set.
func (e *Engine) Cycles() *cycles.Set {
	return e.cycles
}

// Ledger exposes the live behavioral state, primarily for reporting.
func (e *Engine) Ledger() *agents.Ledger {
	return e.ledger
}

// EdgeStatuses returns a copy of each obligation's most recent outcome.
func (e *Engine) EdgeStatuses() map[uint64]network.EdgeStatus {
	out := make(map[uint64]network.EdgeStatus, len(e.statuses))
	for id, st := range e.statuses {
		out[id] = st
	}
	return out
}

// Run plays every round and assembles the result. An engine runs once;
// a second call is rejected.
func (e *Engine) Run() (*Result, error) {
	if e.done {
		return nil, errors.New("engine already ran")
	}
	e.done = true

	start := time.Now()
	result := &Result{
		RunID:           uuid.New().String(),
		Scenario:        e.cfg.Scenario,
		Mode:            e.cfg.Mode,
		Rounds:          e.cfg.Rounds,
		Seed:            e.cfg.Seed,
		Companies:       e.net.CompanyCount(),
		Edges:           e.net.EdgeCount(),
		CycleStats:      e.cycles.Stats(),
		CyclesTruncated: e.truncated,
		StartedAt:       start,
		History:         make([]RoundResult, 0, e.cfg.Rounds),
	}

	logging.Info("simulation starting",
		logging.Component("sim"),
		logging.RunID(result.RunID),
		logging.Scenario(e.cfg.Scenario),
		logging.Mode(e.cfg.Mode.String()),
		logging.Int("rounds", e.cfg.Rounds),
		logging.Count(e.cycles.Len()))

	for round := 1; round <= e.cfg.Rounds; round++ {
		rr := e.playRound(round)
		result.History = append(result.History, rr)

		result.PaymentsMade += rr.PaymentsMade
		result.PaymentsDelayed += rr.PaymentsDelayed
		result.ResolvedByBank += rr.ResolvedByBank
		result.TotalVolumePaid += rr.VolumePaid
		result.CyclesResolved += rr.CyclesResolved
		result.BankInjected += rr.BankInjected
	}

	if total := result.PaymentsMade + result.PaymentsDelayed; total > 0 {
		result.PaymentRate = float64(result.PaymentsMade) / float64(total)
	}

	summary := e.ledger.Summarize()
	result.AvgFinalReputation = summary.AvgReputation
	result.AvgFinalSuspicion = summary.AvgSuspicion
	result.AvgFinalCapital = summary.AvgCapital
	result.Elapsed = time.Since(start)

	logging.Info("simulation finished",
		logging.Component("sim"),
		logging.RunID(result.RunID),
		logging.Scenario(e.cfg.Scenario),
		logging.Mode(e.cfg.Mode.String()),
		logging.Rate(result.PaymentRate),
		logging.Int("cycles_resolved", result.CyclesResolved),
		logging.Latency(result.Elapsed))

	return result, nil
}

// playRound advances the game one round. Decisions read the belief
// snapshot taken at round start; payments received land in an inbox
// credited only at round end, so income cannot be re-spent in the round
// it arrives. Spending is reserved sequentially in edge order.
func (e *Engine) playRound(round int) RoundResult {
	rr := RoundResult{Round: round}

	due := e.dueEdges(round)
	if len(due) == 0 {
		sum := e.ledger.Summarize()
		rr.AvgReputation = sum.AvgReputation
		rr.AvgSuspicion = sum.AvgSuspicion
		return rr
	}

	beliefs := e.ledger.Snapshot()
	spent := make(map[uint64]float64)
	inbox := make(map[uint64]float64)
	settled := make(map[uint64]bool)

	if e.cfg.Mode == BankAssisted {
		e.bankPass(due, spent, inbox, settled, &rr)
	}

	for _, edge := range due {
		if settled[edge.ID] {
			continue
		}
		available := e.ledger.State(edge.Debtor).Capital - spent[edge.Debtor]
		decision := e.policy.Decide(available, edge.Amount,
			beliefs.Suspicion[edge.Debtor], beliefs.Reputation[edge.Creditor])

		if decision == agents.Pay {
			spent[edge.Debtor] += edge.Amount
			inbox[edge.Creditor] += edge.Amount
			e.ledger.RecordPayment(edge.Debtor, edge.Creditor, edge.Amount)
			e.statuses[edge.ID] = network.StatusPaid
			rr.PaymentsMade++
			rr.VolumePaid += edge.Amount
		} else {
			e.ledger.RecordDelay(edge.Debtor)
			e.statuses[edge.ID] = network.StatusDelayed
			rr.PaymentsDelayed++
		}
	}

	for id, amount := range spent {
		e.ledger.Debit(id, amount)
	}
	for id, amount := range inbox {
		e.ledger.Credit(id, amount)
	}

	sum := e.ledger.Summarize()
	rr.AvgReputation = sum.AvgReputation
	rr.AvgSuspicion = sum.AvgSuspicion
	return rr
}

// dueEdges returns the obligations due this round in stable edge order.
// Obligations recur: an edge is due every round from its DueRound on.
func (e *Engine) dueEdges(round int) []*network.DebtEdge {
	due := make([]*network.DebtEdge, 0, e.net.EdgeCount())
	for _, edge := range e.net.Edges() {
		if edge.DueRound <= round {
			due = append(due, edge)
		}
	}
	return due
}

// bankPass settles complete cycles through the clearing bank. A cycle
// qualifies when every consecutive pair carries at least one obligation
// due this round; pairs already cleared by an overlapping cycle earlier
// in the same round do not disqualify it. For each pair the bank settles
// the first still-open obligation: the debtor pays what it can and the
// bank injects the shortfall, so the creditor is always made whole.
func (e *Engine) bankPass(due []*network.DebtEdge, spent, inbox map[uint64]float64, settled map[uint64]bool, rr *RoundResult) {
	pairDue := make(map[[2]uint64][]*network.DebtEdge)
	for _, edge := range due {
		key := [2]uint64{edge.Debtor, edge.Creditor}
		pairDue[key] = append(pairDue[key], edge)
	}

	for _, cycle := range e.cycles.Cycles() {
		if e.cfg.MaxCycleResolutionsPerRound > 0 && rr.CyclesResolved >= e.cfg.MaxCycleResolutionsPerRound {
			break
		}

		pairs := cycle.Pairs()
		complete := true
		for _, p := range pairs {
			if len(pairDue[p]) == 0 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}

		for _, p := range pairs {
			var target *network.DebtEdge
			for _, edge := range pairDue[p] {
				if !settled[edge.ID] {
					target = edge
					break
				}
			}
			if target == nil {
				continue
			}
			e.settleByBank(target, spent, inbox, settled, rr)
		}
		rr.CyclesResolved++
	}
}

func (e *Engine) settleByBank(edge *network.DebtEdge, spent, inbox map[uint64]float64, settled map[uint64]bool, rr *RoundResult) {
	available := e.ledger.State(edge.Debtor).Capital - spent[edge.Debtor]
	if available < 0 {
		available = 0
	}
	own := edge.Amount
	if available < own {
		own = available
	}

	spent[edge.Debtor] += own
	inbox[edge.Creditor] += edge.Amount
	settled[edge.ID] = true
	e.statuses[edge.ID] = network.StatusResolvedByBank
	e.ledger.RecordPayment(edge.Debtor, edge.Creditor, edge.Amount)

	rr.PaymentsMade++
	rr.ResolvedByBank++
	rr.VolumePaid += edge.Amount
	rr.BankInjected += edge.Amount - own
}
