package archive

import "context"

func (a *PGArchive) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		mode TEXT NOT NULL,
		rounds INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		payment_rate DOUBLE PRECISION NOT NULL,
		payments_made BIGINT NOT NULL,
		payments_delayed BIGINT NOT NULL,
		cycles_resolved BIGINT NOT NULL,
		bank_injected DOUBLE PRECISION NOT NULL,
		started_at TIMESTAMP NOT NULL,
		result JSONB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := a.pool.Exec(ctx, schema)
	return err
}
