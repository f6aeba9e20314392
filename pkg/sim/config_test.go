package sim

import (
	"encoding/json"
	"testing"
)

// TestMode_String covers the reporting names of both modes.
func TestMode_String(t *testing.T) {
	if got := Unassisted.String(); got != "unassisted" {
		t.Errorf("Unassisted.String() = %q, want unassisted", got)
	}
	if got := BankAssisted.String(); got != "bank_assisted" {
		t.Errorf("BankAssisted.String() = %q, want bank_assisted", got)
	}
	if got := Mode(9).String(); got != "unknown" {
		t.Errorf("Mode(9).String() = %q, want unknown", got)
	}
}

// TestParseMode parses valid names and rejects bad ones.
func TestParseMode(t *testing.T) {
	m, err := ParseMode("bank_assisted")
	if err != nil {
		t.Fatalf("ParseMode failed: %v", err)
	}
	if m != BankAssisted {
		t.Errorf("ParseMode(bank_assisted) = %v, want BankAssisted", m)
	}

	if _, err := ParseMode("magic"); err == nil {
		t.Error("Expected error for unknown mode name")
	}
}

// TestMode_JSON round-trips a mode through its JSON name and rejects
// non-string encodings.
func TestMode_JSON(t *testing.T) {
	data, err := json.Marshal(BankAssisted)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"bank_assisted"` {
		t.Errorf("Marshal = %s, want \"bank_assisted\"", data)
	}

	var m Mode
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if m != BankAssisted {
		t.Errorf("Round-trip = %v, want BankAssisted", m)
	}

	if err := json.Unmarshal([]byte(`5`), &m); err == nil {
		t.Error("Expected error for numeric mode encoding")
	}
}

// TestConfig_Validate covers the field ranges and the custom rules.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"empty scenario", func(c *Config) { c.Scenario = "" }, true},
		{"bad scenario name", func(c *Config) { c.Scenario = "1crisis" }, true},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }, true},
		{"excessive rounds", func(c *Config) { c.Rounds = 2_000_000 }, true},
		{"suspicion above one", func(c *Config) { c.BaseSuspicion = 1.5 }, true},
		{"negative suspicion", func(c *Config) { c.BaseSuspicion = -0.1 }, true},
		{"sensitivity above one", func(c *Config) { c.Sensitivity = 1.1 }, true},
		{"jitter too wide", func(c *Config) { c.SuspicionJitter = 0.6 }, true},
		{"negative resolution cap", func(c *Config) { c.MaxCycleResolutionsPerRound = -1 }, true},
		{"negative max cycles", func(c *Config) { c.Cycles.MaxCycles = -1 }, true},
		{"assisted mode", func(c *Config) { c.Mode = BankAssisted }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

// TestDefaultConfig sanity-checks the reference configuration.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Rounds != 100 {
		t.Errorf("Rounds = %d, want 100", cfg.Rounds)
	}
	if cfg.Mode != Unassisted {
		t.Errorf("Mode = %v, want Unassisted", cfg.Mode)
	}
	if cfg.Cycles.MaxLength != 20 {
		t.Errorf("Cycles.MaxLength = %d, want 20", cfg.Cycles.MaxLength)
	}
}
