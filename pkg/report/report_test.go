package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/scenario"
	"github.com/dd0wney/liquigraph/pkg/sim"
)

func sampleNetStats() network.NetworkStats {
	return network.NetworkStats{
		Companies:    142,
		Edges:        226,
		TotalDebt:    8_500_000,
		AvgDebtSize:  37_610,
		AvgOutDegree: 1.59,
		Sectors:      map[string]int{"agri": 16, "retail": 16},
	}
}

func sampleCycleStats() cycles.Stats {
	return cycles.Stats{
		TotalCycles:       66,
		ShortestCycle:     3,
		LongestCycle:      10,
		AverageLength:     4.2,
		CompaniesInCycles: 95,
		HubCount:          12,
		MegaHubCount:      3,
		MaxParticipation:  24,
	}
}

func sampleResult(scenario string, mode sim.Mode, rate float64) *sim.Result {
	history := []sim.RoundResult{
		{Round: 1, PaymentsMade: 180, PaymentsDelayed: 46, VolumePaid: 90_000},
		{Round: 2, PaymentsMade: 200, PaymentsDelayed: 26, VolumePaid: 110_000},
		{Round: 3, PaymentsMade: 226, PaymentsDelayed: 0, VolumePaid: 130_000},
	}
	r := &sim.Result{
		RunID:              "test-run",
		Scenario:           scenario,
		Mode:               mode,
		Rounds:             3,
		Companies:          142,
		Edges:              226,
		PaymentsMade:       606,
		PaymentsDelayed:    72,
		PaymentRate:        rate,
		TotalVolumePaid:    330_000,
		AvgFinalReputation: 0.91,
		AvgFinalSuspicion:  0.24,
		History:            history,
	}
	if mode == sim.BankAssisted {
		r.ResolvedByBank = 190
		r.CyclesResolved = 66
	}
	return r
}

func TestWriteScenarioAnalysis(t *testing.T) {
	unassisted := sampleResult("crisis", sim.Unassisted, 0.42)
	assisted := sampleResult("crisis", sim.BankAssisted, 0.97)

	var buf bytes.Buffer
	if err := WriteScenarioAnalysis(&buf, sampleNetStats(), sampleCycleStats(), unassisted, assisted); err != nil {
		t.Fatalf("WriteScenarioAnalysis failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Liquidity Game Analysis",
		"crisis climate",
		"--- Network Structure ---",
		"--- Debt Cycle Analysis ---",
		"--- Unassisted Run ---",
		"--- Bank-Assisted Run ---",
		"--- Comparison ---",
		"Verdict:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Report missing %q", want)
		}
	}

	if got := strings.Count(output, "Settled by bank:"); got != 1 {
		t.Errorf("Expected bank settlement line only in assisted section, found %d", got)
	}
	if !strings.Contains(output, "42.0%") {
		t.Error("Report missing unassisted payment rate")
	}
	if !strings.Contains(output, "97.0%") {
		t.Error("Report missing assisted payment rate")
	}
}

func TestWriteScenarioAnalysis_Verdicts(t *testing.T) {
	tests := []struct {
		name            string
		unassistedRate  float64
		assistedRate    float64
		verdictFragment string
	}{
		{"large gain", 0.04, 0.97, "turns gridlock into settled trade"},
		{"modest gain", 0.80, 0.92, "meaningfully improves"},
		{"no change", 0.99, 1.0, "little difference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unassisted := sampleResult("test", sim.Unassisted, tt.unassistedRate)
			assisted := sampleResult("test", sim.BankAssisted, tt.assistedRate)

			var buf bytes.Buffer
			if err := WriteScenarioAnalysis(&buf, sampleNetStats(), sampleCycleStats(), unassisted, assisted); err != nil {
				t.Fatalf("WriteScenarioAnalysis failed: %v", err)
			}
			if !strings.Contains(buf.String(), tt.verdictFragment) {
				t.Errorf("Expected verdict containing %q", tt.verdictFragment)
			}
		})
	}
}

func TestWriteRunSummary(t *testing.T) {
	r := sampleResult("recession", sim.BankAssisted, 0.88)

	var buf bytes.Buffer
	if err := WriteRunSummary(&buf, sampleNetStats(), sampleCycleStats(), r); err != nil {
		t.Fatalf("WriteRunSummary failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"recession climate, bank_assisted",
		"--- Network Structure ---",
		"--- Outcome ---",
		"Settled by bank:",
		"Dynamics:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Run summary missing %q", want)
		}
	}
	if strings.Contains(output, "Verdict:") {
		t.Error("Single-run summary should not include a comparison verdict")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWriteScenarioAnalysis_PropagatesWriteError(t *testing.T) {
	unassisted := sampleResult("crisis", sim.Unassisted, 0.42)
	assisted := sampleResult("crisis", sim.BankAssisted, 0.97)

	err := WriteScenarioAnalysis(failWriter{}, sampleNetStats(), sampleCycleStats(), unassisted, assisted)
	if err == nil {
		t.Fatal("Expected write error to propagate")
	}
	if !strings.Contains(err.Error(), "sink closed") {
		t.Errorf("Expected underlying write error, got %v", err)
	}
}

func sweepRows() []sim.MatrixResult {
	boom := sim.MatrixResult{
		Scenario:   scenario.Scenario{Name: "boom", BaseSuspicion: 0.1},
		Unassisted: sampleResult("boom", sim.Unassisted, 1.0),
		Assisted:   sampleResult("boom", sim.BankAssisted, 1.0),
	}
	boom.Delta = sim.Compare(boom.Unassisted, boom.Assisted)

	crisis := sim.MatrixResult{
		Scenario:   scenario.Scenario{Name: "crisis", BaseSuspicion: 0.9},
		Unassisted: sampleResult("crisis", sim.Unassisted, 0.03),
		Assisted:   sampleResult("crisis", sim.BankAssisted, 0.95),
	}
	crisis.Delta = sim.Compare(crisis.Unassisted, crisis.Assisted)

	return []sim.MatrixResult{boom, crisis}
}

func TestWriteSweepAnalysis(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSweepAnalysis(&buf, sampleNetStats(), sampleCycleStats(), sweepRows()); err != nil {
		t.Fatalf("WriteSweepAnalysis failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Scenario Sweep",
		"--- Scenario Comparison ---",
		"--- Payment Dynamics",
		"--- Conclusions ---",
		"boom",
		"crisis",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Sweep report missing %q", want)
		}
	}

	if !strings.Contains(output, "helps most in the crisis climate") {
		t.Error("Expected crisis named as the climate with the largest gain")
	}
	if !strings.Contains(output, "▁") && !strings.Contains(output, "█") {
		t.Error("Expected sparkline runes in dynamics section")
	}
	if !strings.Contains(output, "No external liquidity was required") {
		t.Error("Expected zero-injection conclusion")
	}
}

func TestWriteSweepAnalysis_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSweepAnalysis(&buf, sampleNetStats(), sampleCycleStats(), nil); err != nil {
		t.Fatalf("WriteSweepAnalysis failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No scenarios were run") {
		t.Error("Expected empty-sweep notice")
	}
}

func TestDynamicsSparkline(t *testing.T) {
	history := []sim.RoundResult{
		{PaymentsMade: 0, PaymentsDelayed: 10},
		{PaymentsMade: 5, PaymentsDelayed: 5},
		{PaymentsMade: 10, PaymentsDelayed: 0},
	}
	if got := DynamicsSparkline(history); got != "▁▅█" {
		t.Errorf("Expected ▁▅█, got %q", got)
	}
	if got := DynamicsSparkline(nil); got != "" {
		t.Errorf("Expected empty sparkline for empty history, got %q", got)
	}
}

func TestDynamicsSparkline_CapsWidth(t *testing.T) {
	history := make([]sim.RoundResult, 120)
	for i := range history {
		history[i] = sim.RoundResult{PaymentsMade: 1, PaymentsDelayed: 1}
	}
	got := DynamicsSparkline(history)
	if n := utf8.RuneCountInString(got); n != 60 {
		t.Errorf("Expected 60-cell sparkline, got %d", n)
	}
}

func TestSparkline_Buckets(t *testing.T) {
	if got := sparkline([]float64{0, 0, 1, 1}, 2); got != "▁█" {
		t.Errorf("Expected ▁█, got %q", got)
	}
	// Width larger than the series falls back to one cell per value.
	if got := sparkline([]float64{0, 1}, 10); got != "▁█" {
		t.Errorf("Expected ▁█, got %q", got)
	}
	// Out-of-range values are clamped.
	if got := sparkline([]float64{-0.5, 1.5}, 0); got != "▁█" {
		t.Errorf("Expected clamped ▁█, got %q", got)
	}
}

func TestComparisonTable(t *testing.T) {
	output := ComparisonTable(sweepRows())

	for _, want := range []string{"Scenario", "Suspicion", "Gain (pp)", "boom", "crisis"} {
		if !strings.Contains(output, want) {
			t.Errorf("Table missing %q", want)
		}
	}

	// Header, rule, one line per scenario.
	if got := strings.Count(output, "\n"); got != 4 {
		t.Errorf("Expected 4 lines, got %d", got)
	}
}
