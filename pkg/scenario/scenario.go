// Package scenario defines the economic climates a simulation sweeps
// over, from boom optimism to crisis panic, plus the YAML run
// configuration that selects them.
package scenario

import (
	"github.com/dd0wney/liquigraph/pkg/validation"
)

// Scenario is an economic climate expressed as the suspicion level every
// company starts the simulation with.
type Scenario struct {
	Name          string  `yaml:"name"`
	BaseSuspicion float64 `yaml:"base_suspicion"`
}

// The five preset climates, ordered from optimism to panic.
var (
	Boom      = Scenario{Name: "boom", BaseSuspicion: 0.1}
	Growth    = Scenario{Name: "growth", BaseSuspicion: 0.3}
	Normal    = Scenario{Name: "normal", BaseSuspicion: 0.5}
	Recession = Scenario{Name: "recession", BaseSuspicion: 0.7}
	Crisis    = Scenario{Name: "crisis", BaseSuspicion: 0.9}
)

// All returns the presets in rising suspicion order.
func All() []Scenario {
	return []Scenario{Boom, Growth, Normal, Recession, Crisis}
}

// ByName looks up a preset by name.
func ByName(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// Custom builds a named scenario with an arbitrary base suspicion. The
// name must follow identifier rules and the suspicion must lie in [0, 1].
func Custom(name string, baseSuspicion float64) (Scenario, error) {
	if err := validation.ValidateScenarioName(name); err != nil {
		return Scenario{}, err
	}
	if err := validation.ValidateBaseSuspicion(baseSuspicion); err != nil {
		return Scenario{}, err
	}
	return Scenario{Name: name, BaseSuspicion: baseSuspicion}, nil
}
