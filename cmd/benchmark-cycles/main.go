package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/network"
)

func main() {
	maxCompanies := flag.Int("max-companies", 4000, "Largest synthetic network in the scaling sweep")
	ringSize := flag.Int("ring", 16, "Ring size for the chord density sweep")
	flag.Parse()

	if *ringSize < 4 {
		log.Fatalf("Ring size must be at least 4, got %d", *ringSize)
	}

	fmt.Printf("🔥 Liquigraph - Cycle Enumeration Benchmark\n")
	fmt.Printf("===========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Max companies: %d\n", *maxCompanies)
	fmt.Printf("  Chord ring size: %d\n\n", *ringSize)

	// Benchmark 1: Reference economy
	fmt.Printf("📊 Benchmark 1: Reference Economy\n")
	n, err := network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
	if err != nil {
		log.Fatalf("Failed to generate network: %v", err)
	}

	start := time.Now()
	set, err := cycles.Enumerate(n)
	if err != nil {
		log.Fatalf("Enumeration failed: %v", err)
	}
	duration := time.Since(start)

	stats := set.Stats()
	fmt.Printf("✅ Enumerated in %v\n", duration)
	fmt.Printf("  Companies: %d\n", n.CompanyCount())
	fmt.Printf("  Obligations: %d\n", n.EdgeCount())
	fmt.Printf("  Cycles: %d (lengths %d-%d, avg %.1f)\n",
		set.Len(), stats.ShortestCycle, stats.LongestCycle, stats.AverageLength)
	fmt.Printf("  Hubs: %d, mega-hubs: %d\n", stats.HubCount, stats.MegaHubCount)

	// Benchmark 2: Scaling over disjoint ring blocks
	fmt.Printf("\n📊 Benchmark 2: Scaling (disjoint 5-rings)\n")
	for size := 500; size <= *maxCompanies; size *= 2 {
		blocks, err := buildRingBlocks(size)
		if err != nil {
			log.Fatalf("Failed to build %d-company network: %v", size, err)
		}

		start = time.Now()
		blockSet, err := cycles.EnumerateWithOptions(blocks, cycles.Options{
			MinLength: 2,
			MaxLength: 20,
		})
		if err != nil {
			log.Fatalf("Enumeration failed at %d companies: %v", size, err)
		}
		duration = time.Since(start)

		perCycle := time.Duration(0)
		if blockSet.Len() > 0 {
			perCycle = duration / time.Duration(blockSet.Len())
		}
		fmt.Printf("  %5d companies: %4d cycles in %8v (%v/cycle)\n",
			size, blockSet.Len(), duration, perCycle)
	}

	// Benchmark 3: Chord density on one ring
	fmt.Printf("\n📊 Benchmark 3: Chord Density (%d-ring)\n", *ringSize)
	for chords := 0; chords <= *ringSize; chords += *ringSize / 4 {
		dense, err := buildChordedRing(*ringSize, chords)
		if err != nil {
			log.Fatalf("Failed to build chorded ring: %v", err)
		}

		start = time.Now()
		denseSet, err := cycles.EnumerateWithOptions(dense, cycles.Options{
			MinLength: 2,
			MaxLength: *ringSize,
		})
		if err != nil {
			log.Fatalf("Enumeration failed with %d chords: %v", chords, err)
		}
		duration = time.Since(start)

		fmt.Printf("  %2d chords: %5d cycles in %8v\n", chords, denseSet.Len(), duration)
	}

	// Benchmark 4: Truncation under a cycle budget
	fmt.Printf("\n📊 Benchmark 4: Truncation Budgets\n")
	dense, err := buildChordedRing(*ringSize, *ringSize)
	if err != nil {
		log.Fatalf("Failed to build chorded ring: %v", err)
	}
	for _, budget := range []int{10, 100, 1000} {
		start = time.Now()
		capped, err := cycles.EnumerateWithOptions(dense, cycles.Options{
			MinLength: 2,
			MaxLength: *ringSize,
			MaxCycles: budget,
		})
		duration = time.Since(start)

		switch {
		case errors.Is(err, cycles.ErrEnumerationLimit):
			fmt.Printf("  budget %4d: truncated at %4d cycles in %8v\n", budget, capped.Len(), duration)
		case err != nil:
			log.Fatalf("Enumeration failed at budget %d: %v", budget, err)
		default:
			fmt.Printf("  budget %4d: complete at %4d cycles in %8v\n", budget, capped.Len(), duration)
		}
	}

	fmt.Printf("\n🎯 Summary\n")
	fmt.Printf("==========\n")
	fmt.Printf("Reference economy: %d cycles enumerated per pass\n", set.Len())
	fmt.Printf("Scaling: linear in companies for disjoint blocks\n")
	fmt.Printf("Density: chords multiply cycle counts combinatorially\n")
	fmt.Printf("Budgets: truncation returns a usable partial set\n")

	fmt.Printf("\n✅ Benchmark complete!\n")
}

// buildRingBlocks links companies into disjoint 5-rings, one cycle per
// block.
func buildRingBlocks(companies int) (*network.Network, error) {
	companies -= companies % 5

	comps := make([]network.Company, companies)
	for i := range comps {
		comps[i] = network.Company{
			ID:      uint64(i + 1),
			Name:    fmt.Sprintf("bench-%05d", i+1),
			Capital: 10_000,
		}
	}

	edges := make([]network.DebtEdge, 0, companies)
	for block := 0; block < companies/5; block++ {
		base := uint64(block * 5)
		for i := uint64(0); i < 5; i++ {
			edges = append(edges, network.DebtEdge{
				Debtor:   base + i + 1,
				Creditor: base + (i+1)%5 + 1,
				Amount:   100,
			})
		}
	}
	return network.New(comps, edges)
}

// buildChordedRing builds one ring with shortcut chords jumping half the
// ring, the worst case for simple-cycle counts.
func buildChordedRing(size, chords int) (*network.Network, error) {
	comps := make([]network.Company, size)
	for i := range comps {
		comps[i] = network.Company{
			ID:      uint64(i + 1),
			Name:    fmt.Sprintf("ring-%03d", i+1),
			Capital: 10_000,
		}
	}

	edges := make([]network.DebtEdge, 0, size+chords)
	for i := 0; i < size; i++ {
		edges = append(edges, network.DebtEdge{
			Debtor:   uint64(i + 1),
			Creditor: uint64((i+1)%size + 1),
			Amount:   100,
		})
	}
	for c := 0; c < chords; c++ {
		from := (c * 3) % size
		to := (from + size/2) % size
		edges = append(edges, network.DebtEdge{
			Debtor:   uint64(from + 1),
			Creditor: uint64(to + 1),
			Amount:   50,
		})
	}
	return network.New(comps, edges)
}
