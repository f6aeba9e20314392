package cycles

import "sort"

// Participation thresholds for structural risk classification. A company in
// many cycles concentrates settlement risk: if it delays, every cycle it sits
// on loses its cheapest clearing path.
const (
	HubThreshold     = 5  // Cycles a company must sit on to count as a hub
	MegaHubThreshold = 10 // Cycles a company must sit on to count as a mega-hub
)

// Set is an immutable collection of canonical cycles, sorted by length then
// lexicographically, with per-company participation counts.
type Set struct {
	cycles     []Cycle
	membership map[uint64]int
	maxPart    int
}

func newSet(cycles []Cycle) *Set {
	sortCycles(cycles)

	membership := make(map[uint64]int)
	maxPart := 0
	for _, c := range cycles {
		for _, id := range c {
			membership[id]++
			if membership[id] > maxPart {
				maxPart = membership[id]
			}
		}
	}

	return &Set{cycles: cycles, membership: membership, maxPart: maxPart}
}

// Len returns the number of cycles in the set.
func (s *Set) Len() int {
	return len(s.cycles)
}

// Cycles returns the sorted cycles. The slice is shared; callers must not
// modify it.
func (s *Set) Cycles() []Cycle {
	return s.cycles
}

// Membership returns the per-company cycle participation counts. The map is
// shared; callers must not modify it.
func (s *Set) Membership() map[uint64]int {
	return s.membership
}

// Participation returns how many cycles the company sits on.
func (s *Set) Participation(id uint64) int {
	return s.membership[id]
}

// CompaniesInCycles returns the number of distinct companies that sit on at
// least one cycle.
func (s *Set) CompaniesInCycles() int {
	return len(s.membership)
}

// MaxParticipation returns the highest cycle count of any single company.
func (s *Set) MaxParticipation() int {
	return s.maxPart
}

// Hubs returns companies sitting on at least HubThreshold cycles, in
// ascending ID order. Mega-hubs are included.
func (s *Set) Hubs() []uint64 {
	return s.atLeast(HubThreshold)
}

// MegaHubs returns companies sitting on at least MegaHubThreshold cycles, in
// ascending ID order.
func (s *Set) MegaHubs() []uint64 {
	return s.atLeast(MegaHubThreshold)
}

func (s *Set) atLeast(threshold int) []uint64 {
	ids := make([]uint64, 0)
	for id, count := range s.membership {
		if count >= threshold {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Stats summarizes the structural shape of a cycle set.
type Stats struct {
	TotalCycles       int     `json:"total_cycles"`
	ShortestCycle     int     `json:"shortest_cycle"`
	LongestCycle      int     `json:"longest_cycle"`
	AverageLength     float64 `json:"average_length"`
	CompaniesInCycles int     `json:"companies_in_cycles"`
	HubCount          int     `json:"hub_count"`
	MegaHubCount      int     `json:"mega_hub_count"`
	MaxParticipation  int     `json:"max_cycle_participation"`
}

// Stats computes summary statistics over the set.
func (s *Set) Stats() Stats {
	st := Stats{
		TotalCycles:       len(s.cycles),
		CompaniesInCycles: len(s.membership),
		HubCount:          len(s.Hubs()),
		MegaHubCount:      len(s.MegaHubs()),
		MaxParticipation:  s.maxPart,
	}
	if len(s.cycles) == 0 {
		return st
	}

	st.ShortestCycle = len(s.cycles[0])
	st.LongestCycle = len(s.cycles[len(s.cycles)-1])

	totalLength := 0
	for _, c := range s.cycles {
		totalLength += len(c)
	}
	st.AverageLength = float64(totalLength) / float64(len(s.cycles))

	return st
}
