package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dd0wney/liquigraph/pkg/archive"
	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/journal"
	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/report"
	"github.com/dd0wney/liquigraph/pkg/scenario"
	"github.com/dd0wney/liquigraph/pkg/sim"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration (overrides rounds/seed flags)")
	rounds := flag.Int("rounds", 100, "Rounds to simulate per run")
	seed := flag.Int64("seed", 42, "Random seed shared by every paired run")
	workers := flag.Int("workers", 0, "Worker pool size (default: NumCPU)")
	dataset := flag.String("dataset", "", "JSON dataset path (default: built-in generator)")
	journalDir := flag.String("journal", "", "Append finished runs to the journal in this directory")
	reportDir := flag.String("report-dir", "", "Write per-scenario analyses into this directory")
	archiveDSN := flag.String("archive-dsn", "", "PostgreSQL DSN for the shared run archive")
	flag.Parse()

	fmt.Println("🏦 Liquigraph - Scenario Comparison Matrix")

	var rc scenario.RunConfig
	var err error
	if *configPath != "" {
		rc, err = scenario.LoadRunConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load run config: %v", err)
		}
		fmt.Printf("📂 Loaded config %s\n", *configPath)
	} else {
		rc = scenario.DefaultRunConfig()
		rc.Rounds = *rounds
		rc.Seed = *seed
	}

	scenarios, err := rc.Resolve()
	if err != nil {
		log.Fatalf("Invalid scenario selection: %v", err)
	}

	var n *network.Network
	if *dataset != "" {
		n, err = network.LoadDataset(*dataset)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
	} else if rc.Dataset != "" {
		n, err = network.LoadDataset(rc.Dataset)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
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

	cfg := sim.FromRunConfig(rc)
	if *workers > 0 {
		cfg.Workers = *workers
	}

	fmt.Printf("🎲 Running %d climates x 2 modes x %d rounds...\n\n", len(scenarios), cfg.Rounds)
	start := time.Now()

	rows, err := sim.RunMatrix(n, scenarios, cfg)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	fmt.Printf("🏁 %d runs finished in %v\n\n", 2*len(rows), time.Since(start).Round(time.Millisecond))

	fmt.Println(report.ComparisonTable(rows))

	if err := report.WriteSweepAnalysis(os.Stdout, stats, set.Stats(), rows); err != nil {
		log.Fatalf("Failed to write sweep analysis: %v", err)
	}

	if *reportDir != "" {
		writeScenarioReports(*reportDir, stats, set.Stats(), rows)
	}
	if *journalDir != "" {
		journalRows(*journalDir, rows)
	}
	if *archiveDSN != "" {
		archiveRows(*archiveDSN, rows)
	}

	fmt.Println("✨ Done")
}

func writeScenarioReports(dir string, stats network.NetworkStats, cycleStats cycles.Stats, rows []sim.MatrixResult) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create report directory: %v", err)
	}
	for _, row := range rows {
		path := filepath.Join(dir, row.Scenario.Name+".txt")
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", path, err)
		}
		err = report.WriteScenarioAnalysis(f, stats, cycleStats, row.Unassisted, row.Assisted)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("📄 Wrote %s\n", path)
	}
}

func journalRows(dir string, rows []sim.MatrixResult) {
	j, err := journal.Open(dir)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	defer j.Close()
	for _, row := range rows {
		for _, r := range []*sim.Result{row.Unassisted, row.Assisted} {
			if _, err := j.Record(r); err != nil {
				log.Fatalf("Failed to journal run: %v", err)
			}
		}
	}
	fmt.Printf("📒 Journaled %d runs to %s\n", 2*len(rows), dir)
}

func archiveRows(dsn string, rows []sim.MatrixResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := archive.NewPGArchive(ctx, dsn)
	if err != nil {
		log.Fatalf("Failed to connect to archive: %v", err)
	}
	defer pg.Close()

	for _, row := range rows {
		for _, r := range []*sim.Result{row.Unassisted, row.Assisted} {
			if err := pg.SaveRun(ctx, r); err != nil {
				log.Fatalf("Failed to archive run %s: %v", r.RunID, err)
			}
		}
	}
	fmt.Printf("🗄️  Archived %d runs\n", 2*len(rows))
}
