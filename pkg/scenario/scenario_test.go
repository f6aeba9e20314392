package scenario

import "testing"

func TestAll_RisingSuspicion(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("All returned %d presets, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].BaseSuspicion >= all[i].BaseSuspicion {
			t.Errorf("presets not rising at %d: %v >= %v",
				i, all[i-1].BaseSuspicion, all[i].BaseSuspicion)
		}
	}
}

func TestPresetLevels(t *testing.T) {
	tests := []struct {
		preset Scenario
		name   string
		level  float64
	}{
		{Boom, "boom", 0.1},
		{Growth, "growth", 0.3},
		{Normal, "normal", 0.5},
		{Recession, "recession", 0.7},
		{Crisis, "crisis", 0.9},
	}
	for _, tt := range tests {
		if tt.preset.Name != tt.name {
			t.Errorf("preset name = %q, want %q", tt.preset.Name, tt.name)
		}
		if tt.preset.BaseSuspicion != tt.level {
			t.Errorf("%s suspicion = %v, want %v", tt.name, tt.preset.BaseSuspicion, tt.level)
		}
	}
}

func TestByName(t *testing.T) {
	s, ok := ByName("recession")
	if !ok {
		t.Fatal("ByName(recession) not found")
	}
	if s.BaseSuspicion != 0.7 {
		t.Errorf("recession suspicion = %v, want 0.7", s.BaseSuspicion)
	}

	if _, ok := ByName("stagflation"); ok {
		t.Error("ByName(stagflation) should not resolve")
	}
}

func TestCustom(t *testing.T) {
	s, err := Custom("stagflation", 0.65)
	if err != nil {
		t.Fatalf("Custom failed: %v", err)
	}
	if s.Name != "stagflation" || s.BaseSuspicion != 0.65 {
		t.Errorf("Custom = %+v", s)
	}
}

func TestCustom_Invalid(t *testing.T) {
	if _, err := Custom("", 0.5); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := Custom("9panic", 0.5); err == nil {
		t.Error("expected error for name starting with a digit")
	}
	if _, err := Custom("panic", 1.5); err == nil {
		t.Error("expected error for suspicion above 1")
	}
	if _, err := Custom("panic", -0.1); err == nil {
		t.Error("expected error for negative suspicion")
	}
}
