package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/liquigraph/pkg/validation"
)

// CustomScenario is a user-defined climate in the run configuration.
type CustomScenario struct {
	Name          string  `yaml:"name" validate:"required"`
	BaseSuspicion float64 `yaml:"base_suspicion" validate:"gte=0,lte=1"`
}

// RunConfig selects what a simulation sweep runs: how many rounds, which
// climates, and the behavioral knobs. Zero values fall back to defaults
// where a default exists.
type RunConfig struct {
	Rounds          int              `yaml:"rounds" validate:"min=1,max=1000000"`
	Seed            int64            `yaml:"seed"`
	Sensitivity     float64          `yaml:"sensitivity" validate:"gte=0,lte=1"`
	SuspicionJitter float64          `yaml:"suspicion_jitter" validate:"gte=0,lte=0.5"`
	Scenarios       []string         `yaml:"scenarios" validate:"omitempty,dive,required"`
	Custom          []CustomScenario `yaml:"custom" validate:"omitempty,dive"`
	Dataset         string           `yaml:"dataset"`
}

// DefaultRunConfig returns the reference sweep: 100 rounds, seed 42,
// default sensitivity, no jitter, every preset climate.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Rounds:      100,
		Seed:        42,
		Sensitivity: 0.1,
	}
}

// Validate checks field ranges plus cross-field rules: preset names must
// exist and scenario names must not repeat across presets and customs.
func (c *RunConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	v := validation.NewConfigValidator("run config")
	seen := make(map[string]bool)
	for _, name := range c.Scenarios {
		name := name
		v.Custom("scenarios", func() error {
			if _, ok := ByName(name); !ok {
				return fmt.Errorf("unknown preset %q", name)
			}
			if seen[name] {
				return fmt.Errorf("scenario %q listed twice", name)
			}
			seen[name] = true
			return nil
		})
	}
	for _, cs := range c.Custom {
		cs := cs
		v.Custom("custom", func() error {
			if err := validation.ValidateScenarioName(cs.Name); err != nil {
				return err
			}
			if seen[cs.Name] {
				return fmt.Errorf("scenario %q listed twice", cs.Name)
			}
			seen[cs.Name] = true
			return nil
		})
	}
	return v.Err()
}

// Resolve expands the configured selection into concrete scenarios. With
// no explicit selection every preset runs.
func (c *RunConfig) Resolve() ([]Scenario, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if len(c.Scenarios) == 0 && len(c.Custom) == 0 {
		return All(), nil
	}

	out := make([]Scenario, 0, len(c.Scenarios)+len(c.Custom))
	for _, name := range c.Scenarios {
		s, _ := ByName(name)
		out = append(out, s)
	}
	for _, cs := range c.Custom {
		s, err := Custom(cs.Name, cs.BaseSuspicion)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadRunConfig reads and validates a YAML run configuration. Fields
// omitted from the file keep their defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
