package network

import (
	"fmt"
	"math/rand"
)

// GeneratorConfig controls the synthetic business network builder.
type GeneratorConfig struct {
	// Seed drives the amount jitter; the topology is seed-independent.
	Seed int64
	// CapitalFactor scales each company's initial capital as a multiple of
	// its total outgoing obligation amount. Obligations recur every round,
	// so the factor is sized against the round budget: 150 covers a
	// 100-round run with 1.5x headroom.
	CapitalFactor float64
}

// DefaultGeneratorConfig returns the reference configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          42,
		CapitalFactor: 150,
	}
}

// sectorSpec describes one sector of the generated economy. The first ten
// companies of every sector form a payment ring with four short-circuit
// chords; the rest feed the clearing-house triangles, the cross-sector
// trade loops and the service-provider tail edges.
type sectorSpec struct {
	prefix string
	size   int
}

var generatorSectors = []sectorSpec{
	{"MFG", 22},  // manufacturing
	{"TECH", 18}, // technology
	{"RETL", 20}, // retail
	{"LOGI", 17}, // logistics
	{"ENRG", 15}, // energy
	{"AGRI", 14}, // agriculture
	{"FINC", 12}, // finance
	{"CONS", 24}, // construction
}

const ringSize = 10

// GenerateBusinessNetwork builds the 142-company, 226-edge reference
// economy: eight sector payment rings with chorded shortcuts, a
// clearing-house mega-hub in finance, a chain of cross-sector trade
// triangles and a fringe of pure service providers. The default topology
// contains exactly 66 simple cycles (lengths 3, 6 and 10), several hubs
// and one mega-hub.
func GenerateBusinessNetwork(cfg GeneratorConfig) (*Network, error) {
	if cfg.CapitalFactor <= 0 {
		cfg.CapitalFactor = DefaultGeneratorConfig().CapitalFactor
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	// Company ids are assigned sequentially per sector so adjacency and
	// names stay stable across runs.
	type sectorCompanies struct {
		spec sectorSpec
		ids  []uint64
	}
	sectors := make([]sectorCompanies, len(generatorSectors))
	var companies []Company
	nextID := uint64(1)
	for si, spec := range generatorSectors {
		ids := make([]uint64, spec.size)
		for i := 0; i < spec.size; i++ {
			ids[i] = nextID
			companies = append(companies, Company{
				ID:   nextID,
				Name: fmt.Sprintf("%s-%03d", spec.prefix, i+1),
			})
			nextID++
		}
		sectors[si] = sectorCompanies{spec: spec, ids: ids}
	}

	var edges []DebtEdge
	addEdge := func(debtor, creditor uint64, base, spread float64) {
		edges = append(edges, DebtEdge{
			Debtor:   debtor,
			Creditor: creditor,
			Amount:   base + rng.Float64()*spread,
			DueRound: 1,
		})
	}

	// Sector payment rings over the first ten companies, plus four
	// overlapping chords per ring. Chord sources all precede every chord
	// target, so no two chords can share a simple cycle: each chord adds
	// exactly one six-cycle to the ring's ten-cycle.
	for _, s := range sectors {
		ring := s.ids[:ringSize]
		for i := 0; i < ringSize; i++ {
			addEdge(ring[i], ring[(i+1)%ringSize], 40000, 20000)
		}
		for c := 0; c < 4; c++ {
			addEdge(ring[c], ring[c+5], 15000, 10000)
		}
	}

	// Non-ring pools per sector, consumed in order by the roles below.
	pools := make([][]uint64, len(sectors))
	for i, s := range sectors {
		pools[i] = append([]uint64(nil), s.ids[ringSize:]...)
	}
	take := func(sector int, n int) []uint64 {
		picked := pools[sector][:n]
		pools[sector] = pools[sector][n:]
		return picked
	}

	// Clearing-house mega-hub: FINC-001 guarantees ten disjoint
	// pass-through triangles. Suppliers come from producing sectors,
	// repayment routes from distribution sectors, so sector supply chains
	// cannot close additional loops through the hub.
	const (
		secMFG  = 0
		secTECH = 1
		secRETL = 2
		secLOGI = 3
		secENRG = 4
		secAGRI = 5
		secFINC = 6
		secCONS = 7
	)
	hub := sectors[secFINC].ids[0]
	var hubX, hubY []uint64
	hubX = append(hubX, take(secMFG, 4)...)
	hubX = append(hubX, take(secTECH, 3)...)
	hubX = append(hubX, take(secRETL, 3)...)
	hubY = append(hubY, take(secLOGI, 4)...)
	hubY = append(hubY, take(secAGRI, 3)...)
	hubY = append(hubY, take(secCONS, 3)...)
	for i := 0; i < len(hubX); i++ {
		addEdge(hub, hubX[i], 50000, 25000)
		addEdge(hubX[i], hubY[i], 50000, 25000)
		addEdge(hubY[i], hub, 50000, 25000)
	}

	// Cross-sector trade triangles, chained so consecutive triangles share
	// exactly one company. Sharing a single vertex composes no extra
	// simple cycles, so sixteen triangles contribute sixteen cycles.
	var tradePool []uint64
	for i := range pools {
		tradePool = append(tradePool, pools[i]...)
		pools[i] = nil
	}
	const tradeTriangles = 16
	tradeVertices := tradePool[:2*tradeTriangles+1]
	for j := 0; j < tradeTriangles; j++ {
		a := tradeVertices[2*j]
		b := tradeVertices[2*j+1]
		c := tradeVertices[2*j+2]
		addEdge(a, b, 25000, 15000)
		addEdge(b, c, 25000, 15000)
		addEdge(c, a, 25000, 15000)
	}

	// Service providers: pure payment sinks with no outgoing debt, fed by
	// ring companies. Sink edges can never lie on a cycle.
	leaves := tradePool[2*tradeTriangles+1:]
	const tailEdges = 36
	for t := 0; t < tailEdges; t++ {
		src := sectors[t%len(sectors)].ids[(t/len(sectors))%ringSize]
		leaf := leaves[t%len(leaves)]
		addEdge(src, leaf, 5000, 5000)
	}

	// Capital scales with each company's recurring outgoing volume, plus a
	// floor so pure sinks carry a balance.
	outgoing := make(map[uint64]float64, len(companies))
	for _, e := range edges {
		outgoing[e.Debtor] += e.Amount
	}
	for i := range companies {
		companies[i].Capital = cfg.CapitalFactor*outgoing[companies[i].ID] + 10000
	}

	return New(companies, edges)
}
