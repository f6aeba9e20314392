package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/journal"
	"github.com/dd0wney/liquigraph/pkg/metrics"
	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/report"
	"github.com/dd0wney/liquigraph/pkg/scenario"
	"github.com/dd0wney/liquigraph/pkg/sim"
)

func main() {
	scenarioName := flag.String("scenario", "normal", "Climate preset: boom, growth, normal, recession, crisis")
	modeName := flag.String("mode", "both", "Simulation mode: unassisted, bank_assisted or both")
	rounds := flag.Int("rounds", 100, "Rounds to simulate")
	seed := flag.Int64("seed", 42, "Random seed")
	dataset := flag.String("dataset", "", "JSON dataset path (default: built-in generator)")
	out := flag.String("out", "", "Write the report to this file instead of stdout")
	journalDir := flag.String("journal", "", "Append finished runs to the journal in this directory")
	graphmlPath := flag.String("export-graphml", "", "Write the network as GraphML to this file")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	fmt.Println("🏦 Liquigraph - Strategic Liquidity Game")

	s, ok := scenario.ByName(*scenarioName)
	if !ok {
		log.Fatalf("Unknown scenario %q (presets: boom, growth, normal, recession, crisis)", *scenarioName)
	}

	var n *network.Network
	var err error
	if *dataset != "" {
		n, err = network.LoadDataset(*dataset)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		fmt.Printf("📂 Loaded dataset %s\n", *dataset)
	} else {
		n, err = network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
		if err != nil {
			log.Fatalf("Failed to generate network: %v", err)
		}
	}
	stats := n.Stats()
	fmt.Printf("✅ Economy ready: %d companies, %d obligations\n", stats.Companies, stats.Edges)

	set, err := cycles.Enumerate(n)
	if err != nil {
		log.Fatalf("Failed to enumerate cycles: %v", err)
	}
	cycleStats := set.Stats()
	fmt.Printf("🔄 Found %d debt cycles\n", set.Len())

	reg := metrics.DefaultRegistry()
	reg.UpdateNetwork(stats.Companies, stats.Edges, stats.TotalDebt)
	reg.UpdateCycles(cycleStats.TotalCycles, cycleStats.HubCount, cycleStats.MegaHubCount)

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, reg)
	}

	if *graphmlPath != "" {
		if err := exportGraphML(n, *graphmlPath); err != nil {
			log.Fatalf("Failed to export GraphML: %v", err)
		}
		fmt.Printf("💾 GraphML written to %s\n", *graphmlPath)
	}

	output := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create report file: %v", err)
		}
		defer f.Close()
		output = f
	}

	cfg := sim.DefaultMatrixConfig()
	cfg.Rounds = *rounds
	cfg.Seed = *seed

	fmt.Printf("\n🎲 Simulating %d rounds of the %s climate...\n\n", *rounds, s.Name)

	if *modeName == "both" {
		rows, err := sim.RunMatrix(n, []scenario.Scenario{s}, cfg)
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
		row := rows[0]
		recordRuns(*journalDir, row.Unassisted, row.Assisted)
		if err := report.WriteScenarioAnalysis(output, stats, cycleStats, row.Unassisted, row.Assisted); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	} else {
		mode, err := sim.ParseMode(*modeName)
		if err != nil {
			log.Fatalf("Invalid mode: %v", err)
		}
		engine, err := sim.NewEngine(n, sim.Config{
			Scenario:      s.Name,
			BaseSuspicion: s.BaseSuspicion,
			Rounds:        cfg.Rounds,
			Mode:          mode,
			Seed:          cfg.Seed,
			Sensitivity:   cfg.Sensitivity,
			Cycles:        cfg.Cycles,
		})
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}
		result, err := engine.Run()
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
		recordRuns(*journalDir, result)
		if err := report.WriteRunSummary(output, stats, cycleStats, result); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	}

	if *out != "" {
		fmt.Printf("📄 Report written to %s\n", *out)
	}
	fmt.Println("✨ Done")
}

func recordRuns(dir string, results ...*sim.Result) {
	if dir == "" {
		return
	}
	j, err := journal.Open(dir)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()
	for _, r := range results {
		seq, err := j.Record(r)
		if err != nil {
			log.Fatalf("Failed to journal run: %v", err)
		}
		fmt.Printf("📒 Journaled %s/%s as record %d\n", r.Scenario, r.Mode, seq)
	}
}

func serveMetrics(addr string, reg *metrics.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	fmt.Printf("📊 Metrics on http://%s/metrics\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Metrics server failed: %v", err)
	}
}

func exportGraphML(n *network.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return n.ExportGraphML(f)
}
