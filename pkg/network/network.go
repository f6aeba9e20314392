// Package network models a directed debt network: companies connected by
// payment obligations. The topology is built once, validated, and immutable
// afterward; per-run obligation state lives with the simulation, not here,
// so one network can back many concurrent runs.
package network

import (
	"sort"
	"strconv"
)

// Company is a vertex in the debt network.
type Company struct {
	ID      uint64
	Name    string
	Capital float64 // initial liquidity for a simulation run
}

// EdgeStatus is the outcome of an obligation in the round that evaluated it.
type EdgeStatus uint8

const (
	StatusPending EdgeStatus = iota
	StatusPaid
	StatusDelayed
	StatusResolvedByBank
)

// String returns the reporting name of a status.
func (s EdgeStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPaid:
		return "paid"
	case StatusDelayed:
		return "delayed"
	case StatusResolvedByBank:
		return "resolved_by_bank"
	default:
		return "unknown"
	}
}

// DebtEdge is one standing obligation, directed debtor → creditor. A debt
// relationship produces a due obligation every round from DueRound on.
type DebtEdge struct {
	ID       uint64
	Debtor   uint64
	Creditor uint64
	Amount   float64
	DueRound int
}

// Network is the immutable debt graph: a fixed company set plus a fixed
// edge set with O(1) adjacency lookups in both directions.
type Network struct {
	companies map[uint64]*Company
	ids       []uint64 // ascending
	edges     []*DebtEdge
	outgoing  map[uint64][]*DebtEdge
	incoming  map[uint64][]*DebtEdge
	// distinct creditor ids per debtor, ascending; drives cycle search
	successors map[uint64][]uint64
	totalDebt  float64
}

// New validates companies and edges and builds the adjacency structure.
// Edge IDs are assigned sequentially in input order. DueRound values ≤ 0
// default to 1. Parallel edges between the same pair are legal; an edge to
// an unknown company, a non-positive amount, a duplicate company id or a
// self-obligation is malformed and aborts the build.
func New(companies []Company, edges []DebtEdge) (*Network, error) {
	if len(companies) == 0 {
		return nil, NewMalformedError("build").Cause(ErrEmptyNetwork).Err()
	}

	n := &Network{
		companies:  make(map[uint64]*Company, len(companies)),
		ids:        make([]uint64, 0, len(companies)),
		edges:      make([]*DebtEdge, 0, len(edges)),
		outgoing:   make(map[uint64][]*DebtEdge, len(companies)),
		incoming:   make(map[uint64][]*DebtEdge, len(companies)),
		successors: make(map[uint64][]uint64),
	}

	for i := range companies {
		c := companies[i]
		if _, exists := n.companies[c.ID]; exists {
			return nil, NewMalformedError("build").Company(c.ID).Cause(ErrDuplicateCompany).Err()
		}
		cc := c
		n.companies[c.ID] = &cc
		n.ids = append(n.ids, c.ID)
	}
	sort.Slice(n.ids, func(i, j int) bool { return n.ids[i] < n.ids[j] })

	for i := range edges {
		e := edges[i]
		if _, ok := n.companies[e.Debtor]; !ok {
			return nil, NewMalformedError("build").Edge(i).Company(e.Debtor).Cause(ErrUnknownCompany).Err()
		}
		if _, ok := n.companies[e.Creditor]; !ok {
			return nil, NewMalformedError("build").Edge(i).Company(e.Creditor).Cause(ErrUnknownCompany).Err()
		}
		if e.Amount <= 0 {
			return nil, NewMalformedError("build").Edge(i).Field("amount").Cause(ErrNonPositiveAmount).Err()
		}
		if e.Debtor == e.Creditor {
			return nil, NewMalformedError("build").Edge(i).Company(e.Debtor).Cause(ErrSelfObligation).Err()
		}
		if e.DueRound <= 0 {
			e.DueRound = 1
		}
		e.ID = uint64(len(n.edges) + 1)
		ee := e
		n.edges = append(n.edges, &ee)
		n.outgoing[e.Debtor] = append(n.outgoing[e.Debtor], &ee)
		n.incoming[e.Creditor] = append(n.incoming[e.Creditor], &ee)
		n.totalDebt += e.Amount
	}

	for id, out := range n.outgoing {
		seen := make(map[uint64]struct{}, len(out))
		succ := make([]uint64, 0, len(out))
		for _, e := range out {
			if _, dup := seen[e.Creditor]; dup {
				continue
			}
			seen[e.Creditor] = struct{}{}
			succ = append(succ, e.Creditor)
		}
		sort.Slice(succ, func(i, j int) bool { return succ[i] < succ[j] })
		n.successors[id] = succ
	}

	return n, nil
}

// CompanyCount returns the number of companies.
func (n *Network) CompanyCount() int {
	return len(n.companies)
}

// EdgeCount returns the number of debt edges.
func (n *Network) EdgeCount() int {
	return len(n.edges)
}

// Company returns the company with the given id.
func (n *Network) Company(id uint64) (*Company, bool) {
	c, ok := n.companies[id]
	return c, ok
}

// HasCompany reports whether the id names a company.
func (n *Network) HasCompany(id uint64) bool {
	_, ok := n.companies[id]
	return ok
}

// CompanyName returns the display name for a company id, falling back to
// the numeric id when the company is unknown or unnamed.
func (n *Network) CompanyName(id uint64) string {
	if c, ok := n.companies[id]; ok && c.Name != "" {
		return c.Name
	}
	return "company-" + strconv.FormatUint(id, 10)
}

// CompanyIDs returns all company ids in ascending order. The returned slice
// is shared; callers must not modify it.
func (n *Network) CompanyIDs() []uint64 {
	return n.ids
}

// Edges returns all debt edges in input order. The returned slice is
// shared; callers must not modify it.
func (n *Network) Edges() []*DebtEdge {
	return n.edges
}

// OutgoingEdges returns the debts owed by the company.
func (n *Network) OutgoingEdges(id uint64) []*DebtEdge {
	return n.outgoing[id]
}

// IncomingEdges returns the claims held by the company.
func (n *Network) IncomingEdges(id uint64) []*DebtEdge {
	return n.incoming[id]
}

// Successors returns the distinct creditors of a company, ascending.
func (n *Network) Successors(id uint64) []uint64 {
	return n.successors[id]
}

// TotalDebt returns the sum of all edge amounts.
func (n *Network) TotalDebt() float64 {
	return n.totalDebt
}
