package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database is the connection to the run-archive PostgreSQL database.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase creates a new database connection.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// migrations, applied in order and tracked in schema_migrations.
var migrations = []struct {
	version string
	sql     string
}{
	{
		version: "001_create_runs",
		sql: `
			CREATE TABLE IF NOT EXISTS runs (
				id UUID PRIMARY KEY,
				season TEXT NOT NULL,
				first_training_season TEXT NOT NULL,
				last_training_season TEXT NOT NULL,
				training_rows INT NOT NULL,
				scored_rookies INT NOT NULL,
				cv_mae DOUBLE PRECISION NOT NULL,
				cv_rmse DOUBLE PRECISION NOT NULL,
				cv_r2 DOUBLE PRECISION NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_runs_season ON runs(season, created_at DESC);
		`,
	},
	{
		version: "002_create_run_residuals",
		sql: `
			CREATE TABLE IF NOT EXISTS run_residuals (
				id BIGSERIAL PRIMARY KEY,
				run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
				player_id INT NOT NULL,
				player_name TEXT NOT NULL,
				team TEXT NOT NULL,
				pick INT NOT NULL,
				games_played INT NOT NULL,
				minutes DOUBLE PRECISION NOT NULL,
				pie DOUBLE PRECISION NOT NULL,
				salary DOUBLE PRECISION NOT NULL,
				actual DOUBLE PRECISION NOT NULL,
				predicted DOUBLE PRECISION NOT NULL,
				residual DOUBLE PRECISION NOT NULL,
				percentile DOUBLE PRECISION NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_run_residuals_run ON run_residuals(run_id);
		`,
	},
}

// RunMigrations applies any pending schema migrations.
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m.version, m.sql); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")

	return nil
}

// createMigrationsTable creates a table to track which migrations have been run.
func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

// runMigration applies a single migration if it hasn't been applied yet.
func (db *Database) runMigration(version, statement string) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Printf("  ⊘ Skipping %s (already applied)", version)
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(statement); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", version)
	return nil
}
