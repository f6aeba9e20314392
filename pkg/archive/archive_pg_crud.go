package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dd0wney/liquigraph/pkg/sim"
)

// RunSummary is the indexed slice of a run used by listings; the full
// result lives in the JSONB column.
type RunSummary struct {
	RunID          string
	Scenario       string
	Mode           string
	Rounds         int
	PaymentRate    float64
	CyclesResolved int
	StartedAt      time.Time
}

// SaveRun stores a finished run.
func (a *PGArchive) SaveRun(ctx context.Context, result *sim.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO runs (run_id, scenario, mode, rounds, seed, payment_rate,
			payments_made, payments_delayed, cycles_resolved, bank_injected,
			started_at, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = a.pool.Exec(ctx, query,
		result.RunID,
		result.Scenario,
		result.Mode.String(),
		result.Rounds,
		result.Seed,
		result.PaymentRate,
		result.PaymentsMade,
		result.PaymentsDelayed,
		result.CyclesResolved,
		result.BankInjected,
		result.StartedAt,
		resultJSON,
	)

	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID, including its full round history.
func (a *PGArchive) GetRun(ctx context.Context, runID string) (*sim.Result, error) {
	query := `SELECT result FROM runs WHERE run_id = $1`

	var resultJSON []byte
	err := a.pool.QueryRow(ctx, query, runID).Scan(&resultJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	result := &sim.Result{}
	if err := json.Unmarshal(resultJSON, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return result, nil
}

// ListRuns returns summaries of all archived runs, most recent first.
func (a *PGArchive) ListRuns(ctx context.Context) ([]*RunSummary, error) {
	query := `
		SELECT run_id, scenario, mode, rounds, payment_rate, cycles_resolved, started_at
		FROM runs
		ORDER BY started_at DESC
	`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// ListScenarioRuns returns summaries of one scenario's runs, most recent
// first.
func (a *PGArchive) ListScenarioRuns(ctx context.Context, scenario string) ([]*RunSummary, error) {
	query := `
		SELECT run_id, scenario, mode, rounds, payment_rate, cycles_resolved, started_at
		FROM runs
		WHERE scenario = $1
		ORDER BY started_at DESC
	`

	rows, err := a.pool.Query(ctx, query, scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// DeleteRun removes an archived run.
func (a *PGArchive) DeleteRun(ctx context.Context, runID string) error {
	result, err := a.pool.Exec(ctx, `DELETE FROM runs WHERE run_id = $1`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

func scanSummaries(rows pgx.Rows) ([]*RunSummary, error) {
	var summaries []*RunSummary
	for rows.Next() {
		s := &RunSummary{}
		err := rows.Scan(
			&s.RunID,
			&s.Scenario,
			&s.Mode,
			&s.Rounds,
			&s.PaymentRate,
			&s.CyclesResolved,
			&s.StartedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return summaries, nil
}
