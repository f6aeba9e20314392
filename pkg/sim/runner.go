package sim

import (
	"fmt"
	"runtime"

	"github.com/dd0wney/liquigraph/pkg/agents"
	"github.com/dd0wney/liquigraph/pkg/cycles"
	"github.com/dd0wney/liquigraph/pkg/logging"
	"github.com/dd0wney/liquigraph/pkg/metrics"
	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/parallel"
	"github.com/dd0wney/liquigraph/pkg/scenario"
)

// MatrixConfig controls a comparison sweep. Every scenario runs twice,
// once per mode, and both runs start from the same seed so the delta
// isolates the effect of the clearing bank.
type MatrixConfig struct {
	Rounds                      int
	Seed                        int64
	Sensitivity                 float64
	SuspicionJitter             float64
	MaxCycleResolutionsPerRound int
	Cycles                      cycles.Options
	Workers                     int
}

// DefaultMatrixConfig returns the reference sweep settings: 100 rounds,
// seed 42, one worker per CPU.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		Rounds:      100,
		Seed:        42,
		Sensitivity: agents.DefaultSensitivity,
		Cycles:      cycles.DefaultOptions(),
		Workers:     runtime.NumCPU(),
	}
}

// FromRunConfig maps a loaded run configuration onto matrix settings.
func FromRunConfig(rc scenario.RunConfig) MatrixConfig {
	cfg := DefaultMatrixConfig()
	cfg.Rounds = rc.Rounds
	cfg.Seed = rc.Seed
	cfg.Sensitivity = rc.Sensitivity
	cfg.SuspicionJitter = rc.SuspicionJitter
	return cfg
}

// MatrixResult pairs the two runs of one scenario with their delta.
type MatrixResult struct {
	Scenario   scenario.Scenario `json:"scenario"`
	Unassisted *Result           `json:"unassisted"`
	Assisted   *Result           `json:"assisted"`
	Delta      Delta             `json:"delta"`
}

// RunMatrix runs every scenario in both modes on a shared worker pool
// and pairs the results. Passing no scenarios sweeps all presets.
// Results come back in scenario order regardless of which run finished
// first.
func RunMatrix(n *network.Network, scenarios []scenario.Scenario, cfg MatrixConfig) ([]MatrixResult, error) {
	if len(scenarios) == 0 {
		scenarios = scenario.All()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	pool, err := parallel.NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}

	logging.Info("starting scenario sweep",
		logging.Component("sim"),
		logging.Int("scenarios", len(scenarios)),
		logging.Int("rounds", cfg.Rounds),
		logging.Int("workers", workers))

	// Each run writes its own slot, so the slices need no lock.
	runs := make([]*Result, 2*len(scenarios))
	errs := make([]error, 2*len(scenarios))

	for i, s := range scenarios {
		for j, mode := range []Mode{Unassisted, BankAssisted} {
			idx := 2*i + j
			s, mode := s, mode
			pool.Submit(func() {
				runs[idx], errs[idx] = runOne(n, s, mode, cfg)
			})
		}
	}
	pool.Wait()

	for i, s := range scenarios {
		for j := 0; j < 2; j++ {
			if err := errs[2*i+j]; err != nil {
				return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
			}
		}
	}

	out := make([]MatrixResult, len(scenarios))
	for i, s := range scenarios {
		unassisted, assisted := runs[2*i], runs[2*i+1]
		out[i] = MatrixResult{
			Scenario:   s,
			Unassisted: unassisted,
			Assisted:   assisted,
			Delta:      Compare(unassisted, assisted),
		}
	}
	return out, nil
}

// runOne executes a single scenario/mode run and records it with the
// process-wide metrics registry.
func runOne(n *network.Network, s scenario.Scenario, mode Mode, cfg MatrixConfig) (*Result, error) {
	engine, err := NewEngine(n, Config{
		Scenario:                    s.Name,
		BaseSuspicion:               s.BaseSuspicion,
		Rounds:                      cfg.Rounds,
		Mode:                        mode,
		Seed:                        cfg.Seed,
		Sensitivity:                 cfg.Sensitivity,
		SuspicionJitter:             cfg.SuspicionJitter,
		MaxCycleResolutionsPerRound: cfg.MaxCycleResolutionsPerRound,
		Cycles:                      cfg.Cycles,
	})
	if err != nil {
		return nil, err
	}

	reg := metrics.DefaultRegistry()
	reg.RunStarted()
	result, err := engine.Run()
	if err != nil {
		return nil, err
	}

	reg.RecordRun(result.Scenario, result.Mode.String(), result.Elapsed,
		result.Rounds,
		result.PaymentsMade-result.ResolvedByBank,
		result.ResolvedByBank,
		result.PaymentsDelayed,
		result.TotalVolumePaid,
		result.BankInjected,
		result.PaymentRate,
		result.CyclesResolved)
	return result, nil
}
