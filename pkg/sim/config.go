// Package sim runs the round-based settlement game on a debt network.
// Each round every due obligation is decided pay-or-delay from the
// debtor's beliefs; in bank-assisted mode a clearing bank settles
// complete debt cycles first. The engine is deterministic for a given
// seed, so paired runs differing only in mode isolate the bank's effect.
package sim

import (
	"fmt"

	"github.com/dd0wney/liquigraph/pkg/agents"
	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/validation"
)

// Mode selects whether a clearing bank assists cycle settlement.
type Mode uint8

const (
	// Unassisted lets every obligation stand or fall on the debtor's
	// individual decision.
	Unassisted Mode = iota
	// BankAssisted settles complete debt cycles through the clearing
	// bank before individual decisions run.
	BankAssisted
)

func (m Mode) String() string {
	switch m {
	case Unassisted:
		return "unassisted"
	case BankAssisted:
		return "bank_assisted"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to its value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "unassisted":
		return Unassisted, nil
	case "bank_assisted":
		return BankAssisted, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// MarshalJSON encodes the mode by name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a mode name.
func (m *Mode) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("mode must be a string, got %s", data)
	}
	parsed, err := ParseMode(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config parameterizes one simulation run.
type Config struct {
	// Scenario labels the run; it does not affect behavior beyond
	// BaseSuspicion, which the scenario chose.
	Scenario      string  `validate:"required"`
	BaseSuspicion float64 `validate:"gte=0,lte=1"`

	Rounds int   `validate:"min=1,max=1000000"`
	Mode   Mode  `validate:"lte=1"`
	Seed   int64

	// Sensitivity weights creditor reputation in delay decisions; zero
	// falls back to agents.DefaultSensitivity.
	Sensitivity float64 `validate:"gte=0,lte=1"`
	// SuspicionJitter spreads initial suspicion within ± the value.
	SuspicionJitter float64 `validate:"gte=0,lte=0.5"`

	// MaxCycleResolutionsPerRound caps bank settlements per round;
	// zero means unlimited.
	MaxCycleResolutionsPerRound int `validate:"gte=0"`

	// Cycles bounds the enumeration done once at engine construction.
	Cycles cycles.Options
}

// DefaultConfig returns the reference run configuration: 100 rounds of
// the normal climate, unassisted, default cycle bounds.
func DefaultConfig() Config {
	return Config{
		Scenario:      "normal",
		BaseSuspicion: 0.5,
		Rounds:        100,
		Mode:          Unassisted,
		Seed:          42,
		Sensitivity:   agents.DefaultSensitivity,
		Cycles:        cycles.DefaultOptions(),
	}
}

// Validate checks the configuration ranges.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return validation.NewConfigValidator("sim config").
		Custom("scenario", func() error {
			return validation.ValidateScenarioName(c.Scenario)
		}).
		Custom("cycles", func() error {
			if c.Cycles.MaxCycles < 0 {
				return fmt.Errorf("max cycles must be non-negative, got %d", c.Cycles.MaxCycles)
			}
			return nil
		}).
		Err()
}
