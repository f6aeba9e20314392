package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/journal"
	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/report"
	"github.com/dd0wney/liquigraph/pkg/scenario"
	"github.com/dd0wney/liquigraph/pkg/sim"
)

// TestCompleteSimulationWorkflow walks the full pipeline a library user
// would run: generate the economy, enumerate its debt cycles, configure
// and simulate one climate in both modes, journal the outcome, replay
// it, and render the analyst report.
func TestCompleteSimulationWorkflow(t *testing.T) {
	t.Log("=== E2E Test: Complete Simulation Workflow ===")

	// Step 1: Generate the reference economy
	t.Log("Step 1: Generating business network...")
	n, err := network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
	require.NoError(t, err, "Failed to generate network")
	stats := n.Stats()
	assert.Equal(t, 142, stats.Companies, "Reference economy should have 142 companies")
	assert.Equal(t, 226, stats.Edges, "Reference economy should have 226 obligations")
	t.Logf("✓ Generated %d companies with %d obligations", stats.Companies, stats.Edges)

	// Step 2: Enumerate debt cycles
	t.Log("Step 2: Enumerating debt cycles...")
	set, err := cycles.Enumerate(n)
	require.NoError(t, err, "Failed to enumerate cycles")
	assert.Equal(t, 66, set.Len(), "Reference economy should contain 66 simple cycles")
	t.Logf("✓ Found %d cycles across %d companies", set.Len(), set.CompaniesInCycles())

	// Step 3: Load the sweep configuration from YAML
	t.Log("Step 3: Loading run configuration...")
	dir := t.TempDir()
	configPath := filepath.Join(dir, "run.yaml")
	configYAML := "rounds: 40\nseed: 7\nscenarios:\n  - crisis\n"
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0644))

	rc, err := scenario.LoadRunConfig(configPath)
	require.NoError(t, err, "Failed to load run config")
	selected, err := rc.Resolve()
	require.NoError(t, err, "Failed to resolve scenarios")
	require.Len(t, selected, 1)
	t.Logf("✓ Configured %d rounds of the %s climate", rc.Rounds, selected[0].Name)

	// Step 4: Run both modes
	t.Log("Step 4: Running paired simulations...")
	rows, err := sim.RunMatrix(n, selected, sim.FromRunConfig(rc))
	require.NoError(t, err, "Matrix run failed")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Greater(t, row.Assisted.PaymentRate, row.Unassisted.PaymentRate,
		"Bank assistance should raise the crisis payment rate")
	assert.Equal(t, set.Len()*rc.Rounds, row.Assisted.CyclesResolved,
		"Bank should resolve every cycle every round")
	t.Logf("✓ Crisis payment rate %.1f%% -> %.1f%% with assistance",
		row.Unassisted.PaymentRate*100, row.Assisted.PaymentRate*100)

	// Step 5: Journal the runs and replay them
	t.Log("Step 5: Journaling results...")
	j, err := journal.Open(dir)
	require.NoError(t, err, "Failed to open journal")
	_, err = j.Record(row.Unassisted)
	require.NoError(t, err, "Failed to record unassisted run")
	seq, err := j.Record(row.Assisted)
	require.NoError(t, err, "Failed to record assisted run")
	assert.Equal(t, uint64(2), seq)
	require.NoError(t, j.Close())

	reopened, err := journal.Open(dir)
	require.NoError(t, err, "Failed to reopen journal")
	defer reopened.Close()

	replayed, err := reopened.Replay()
	require.NoError(t, err, "Replay failed")
	require.Len(t, replayed, 2)
	assert.Equal(t, row.Unassisted.RunID, replayed[0].RunID)
	assert.Equal(t, row.Assisted.PaymentRate, replayed[1].PaymentRate)
	assert.Len(t, replayed[1].History, rc.Rounds, "Replayed run should keep its full history")
	t.Log("✓ Journal round-trip verified")

	// Step 6: Render the analyst report
	t.Log("Step 6: Rendering analysis report...")
	var buf bytes.Buffer
	err = report.WriteScenarioAnalysis(&buf, stats, set.Stats(), row.Unassisted, row.Assisted)
	require.NoError(t, err, "Report rendering failed")
	output := buf.String()
	assert.Contains(t, output, "crisis climate")
	assert.Contains(t, output, "Debt Cycle Analysis")
	assert.Contains(t, output, "Verdict:")
	t.Log("✓ Report rendered with all sections")

	t.Log("=== E2E Test: PASSED ===")
}

// TestFullScenarioSweep runs every preset climate at full length on the
// reference economy and checks the cross-scenario picture.
func TestFullScenarioSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping full sweep in short mode")
	}

	t.Log("=== E2E Test: Full Scenario Sweep ===")

	n, err := network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
	require.NoError(t, err, "Failed to generate network")
	set, err := cycles.Enumerate(n)
	require.NoError(t, err, "Failed to enumerate cycles")

	cfg := sim.DefaultMatrixConfig()
	rows, err := sim.RunMatrix(n, nil, cfg)
	require.NoError(t, err, "Sweep failed")
	require.Len(t, rows, len(scenario.All()), "One row per preset climate")
	t.Logf("Ran %d climates x 2 modes x %d rounds", len(rows), cfg.Rounds)

	byName := make(map[string]sim.MatrixResult, len(rows))
	for _, row := range rows {
		byName[row.Scenario.Name] = row

		assert.Equal(t, row.Scenario.Name, row.Unassisted.Scenario)
		assert.Equal(t, sim.Unassisted, row.Unassisted.Mode)
		assert.Equal(t, sim.BankAssisted, row.Assisted.Mode)
		assert.Equal(t, row.Unassisted.Seed, row.Assisted.Seed, "Paired runs must share a seed")
		assert.False(t, row.Assisted.CyclesTruncated, "Reference economy fits the cycle budget")
		assert.Zero(t, row.Unassisted.ResolvedByBank, "Unassisted runs never touch the bank")

		t.Logf("✓ %-10s %6.1f%% -> %6.1f%%  (%+.1f pp)", row.Scenario.Name,
			row.Unassisted.PaymentRate*100, row.Assisted.PaymentRate*100,
			row.Delta.PaymentRateGain*100)
	}

	boom, ok := byName["boom"]
	require.True(t, ok, "Sweep should include the boom climate")
	assert.Equal(t, 1.0, boom.Unassisted.PaymentRate, "Boom clears fully without help")

	crisis, ok := byName["crisis"]
	require.True(t, ok, "Sweep should include the crisis climate")
	assert.Less(t, crisis.Unassisted.PaymentRate, 0.05, "Crisis should gridlock on its own")
	assert.Greater(t, crisis.Assisted.PaymentRate, 0.8, "Bank should rescue the crisis economy")
	assert.Greater(t, crisis.Delta.PaymentRateGain, 0.5, "Crisis gain should dominate the sweep")

	// The bank's cycle work is structural: identical in every climate.
	for _, row := range rows {
		assert.Equal(t, crisis.Assisted.CyclesResolved, row.Assisted.CyclesResolved,
			"Cycle settlement should not depend on climate")
		assert.Zero(t, row.Assisted.BankInjected, "Reference capitalization needs no injections")
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteSweepAnalysis(&buf, n.Stats(), set.Stats(), rows),
		"Sweep report rendering failed")
	output := buf.String()
	assert.Contains(t, output, "Conclusions")
	assert.Contains(t, output, "helps most in the crisis climate")

	table := report.ComparisonTable(rows)
	for name := range byName {
		assert.Contains(t, table, name)
	}

	t.Log("=== E2E Test: Full Scenario Sweep PASSED ===")
}

// TestDeterministicPipeline repeats the crisis pipeline with a fixed seed
// and expects byte-identical journal payloads for the simulation fields.
func TestDeterministicPipeline(t *testing.T) {
	t.Log("=== E2E Test: Deterministic Pipeline ===")

	n, err := network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
	require.NoError(t, err, "Failed to generate network")

	cfg := sim.DefaultMatrixConfig()
	cfg.Rounds = 25
	cfg.Seed = 99

	run := func() sim.MatrixResult {
		rows, err := sim.RunMatrix(n, []scenario.Scenario{scenario.Crisis}, cfg)
		require.NoError(t, err, "Matrix run failed")
		require.Len(t, rows, 1)
		return rows[0]
	}

	first := run()
	second := run()

	assert.Equal(t, first.Unassisted.PaymentsMade, second.Unassisted.PaymentsMade)
	assert.Equal(t, first.Unassisted.History, second.Unassisted.History,
		"Same seed must reproduce the unassisted run round for round")
	assert.Equal(t, first.Assisted.History, second.Assisted.History,
		"Same seed must reproduce the assisted run round for round")
	assert.Equal(t, first.Delta.PaymentRateGain, second.Delta.PaymentRateGain)

	t.Log("✓ Two runs with seed 99 matched round for round")
	t.Log("=== E2E Test: Deterministic Pipeline PASSED ===")
}
