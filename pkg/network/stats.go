package network

import (
	"strings"
)

// NetworkStats summarizes the static topology for reporting.
type NetworkStats struct {
	Companies    int
	Edges        int
	TotalDebt    float64
	AvgDebtSize  float64
	AvgOutDegree float64
	Sectors      map[string]int // companies per sector prefix, when names carry one
}

// Stats computes summary statistics over the topology. Sector membership is
// derived from the name prefix before the first '-', the convention the
// generator uses; unnamed companies are grouped under "unclassified".
func (n *Network) Stats() NetworkStats {
	s := NetworkStats{
		Companies: len(n.companies),
		Edges:     len(n.edges),
		TotalDebt: n.totalDebt,
		Sectors:   make(map[string]int),
	}
	if s.Edges > 0 {
		s.AvgDebtSize = s.TotalDebt / float64(s.Edges)
	}
	if s.Companies > 0 {
		s.AvgOutDegree = float64(s.Edges) / float64(s.Companies)
	}
	for _, c := range n.companies {
		sector := "unclassified"
		if i := strings.IndexByte(c.Name, '-'); i > 0 {
			sector = c.Name[:i]
		}
		s.Sectors[sector]++
	}
	return s
}
