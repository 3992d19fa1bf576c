package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fortuna/aurum/internal/residuals"
	"github.com/fortuna/aurum/internal/store"
)

// RunRepository handles run-archive data access.
type RunRepository struct {
	db *store.Database
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *store.Database) *RunRepository {
	return &RunRepository{db: db}
}

// InsertRun archives a run and its residual records in one transaction.
func (r *RunRepository) InsertRun(ctx context.Context, run *store.Run, records []residuals.ResidualRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning archive tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, season, first_training_season, last_training_season,
			training_rows, scored_rookies, cv_mae, cv_rmse, cv_r2)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.Season, run.FirstTrainingSeason, run.LastTrainingSeason,
		run.TrainingRows, run.ScoredRookies, run.CVMAE, run.CVRMSE, run.CVR2)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_residuals (run_id, player_id, player_name, team, pick,
			games_played, minutes, pie, salary, actual, predicted, residual, percentile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)
	if err != nil {
		return fmt.Errorf("preparing residual insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx, run.ID, rec.PlayerID, rec.PlayerName,
			rec.TeamAbbreviation, rec.Pick, rec.GamesPlayed, rec.Minutes, rec.PIE,
			rec.Salary, rec.Actual, rec.Predicted, rec.Residual, rec.Percentile)
		if err != nil {
			return fmt.Errorf("inserting residual for %s: %w", rec.PlayerName, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns archived runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*store.Run, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, season, first_training_season, last_training_season,
			training_rows, scored_rookies, cv_mae, cv_rmse, cv_r2, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LatestRun returns the most recent archived run for a season.
func (r *RunRepository) LatestRun(ctx context.Context, season string) (*store.Run, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, season, first_training_season, last_training_season,
			training_rows, scored_rookies, cv_mae, cv_rmse, cv_r2, created_at
		FROM runs
		WHERE season = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, season)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no archived run for season %s", season)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunResiduals returns the archived residual records of a run, biggest
// surplus first.
func (r *RunRepository) GetRunResiduals(ctx context.Context, runID uuid.UUID) ([]residuals.ResidualRecord, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT player_id, player_name, team, pick, games_played, minutes, pie,
			salary, actual, predicted, residual, percentile
		FROM run_residuals
		WHERE run_id = $1
		ORDER BY residual DESC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run residuals: %w", err)
	}
	defer rows.Close()

	var records []residuals.ResidualRecord
	for rows.Next() {
		var rec residuals.ResidualRecord
		err := rows.Scan(&rec.PlayerID, &rec.PlayerName, &rec.TeamAbbreviation,
			&rec.Pick, &rec.GamesPlayed, &rec.Minutes, &rec.PIE, &rec.Salary,
			&rec.Actual, &rec.Predicted, &rec.Residual, &rec.Percentile)
		if err != nil {
			return nil, fmt.Errorf("scanning residual row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*store.Run, error) {
	run := &store.Run{}
	err := row.Scan(&run.ID, &run.Season, &run.FirstTrainingSeason,
		&run.LastTrainingSeason, &run.TrainingRows, &run.ScoredRookies,
		&run.CVMAE, &run.CVRMSE, &run.CVR2, &run.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}
