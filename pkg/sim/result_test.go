package sim

import (
	"encoding/json"
	"math"
	"testing"
)

// TestRoundResult_PaymentRate covers the per-round rate including the
// empty round.
func TestRoundResult_PaymentRate(t *testing.T) {
	rr := RoundResult{PaymentsMade: 3, PaymentsDelayed: 1}
	if got := rr.PaymentRate(); got != 0.75 {
		t.Errorf("PaymentRate = %v, want 0.75", got)
	}

	empty := RoundResult{}
	if got := empty.PaymentRate(); got != 0 {
		t.Errorf("Empty round PaymentRate = %v, want 0", got)
	}
}

// TestCompare derives the assisted-minus-unassisted delta.
func TestCompare(t *testing.T) {
	unassisted := &Result{
		Scenario:        "crisis",
		PaymentRate:     0.02,
		TotalVolumePaid: 45_000,
	}
	assisted := &Result{
		Scenario:        "crisis",
		PaymentRate:     0.85,
		TotalVolumePaid: 1_900_000,
		CyclesResolved:  6600,
		BankInjected:    1234.5,
	}

	delta := Compare(unassisted, assisted)
	if delta.Scenario != "crisis" {
		t.Errorf("Scenario = %q, want crisis", delta.Scenario)
	}
	if math.Abs(delta.PaymentRateGain-0.83) > 1e-9 {
		t.Errorf("PaymentRateGain = %v, want 0.83", delta.PaymentRateGain)
	}
	if delta.VolumeGain != 1_855_000 {
		t.Errorf("VolumeGain = %v, want 1855000", delta.VolumeGain)
	}
	if delta.CyclesResolved != 6600 {
		t.Errorf("CyclesResolved = %d, want 6600", delta.CyclesResolved)
	}
	if delta.BankInjected != 1234.5 {
		t.Errorf("BankInjected = %v, want 1234.5", delta.BankInjected)
	}
}

// TestResult_JSONFieldNames pins the wire names consumers depend on.
func TestResult_JSONFieldNames(t *testing.T) {
	r := Result{
		RunID:       "run-1",
		Scenario:    "boom",
		Mode:        BankAssisted,
		PaymentRate: 1.0,
	}
	data, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"run_id", "scenario", "mode", "payment_rate", "cycle_stats"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Missing JSON field %q", key)
		}
	}
	if decoded["mode"] != "bank_assisted" {
		t.Errorf("mode = %v, want bank_assisted", decoded["mode"])
	}
}
