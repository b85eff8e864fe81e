package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

-- One imported network per size
CREATE TABLE IF NOT EXISTS graphs (
    size INTEGER PRIMARY KEY,
    diameter INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS graph_vertices (
    size INTEGER NOT NULL REFERENCES graphs(size) ON DELETE CASCADE,
    node TEXT NOT NULL,
    PRIMARY KEY (size, node)
);

CREATE TABLE IF NOT EXISTS graph_edges (
    size INTEGER NOT NULL REFERENCES graphs(size) ON DELETE CASCADE,
    u TEXT NOT NULL,
    v TEXT NOT NULL,
    PRIMARY KEY (size, u, v)
);

-- Reward sets: kind is 'nr1', 'solve' or 'eval'
CREATE TABLE IF NOT EXISTS rewards (
    size INTEGER NOT NULL,
    kind TEXT NOT NULL,
    set_index INTEGER NOT NULL,
    node TEXT NOT NULL,
    value REAL NOT NULL,
    PRIMARY KEY (size, kind, set_index, node)
);

CREATE TABLE IF NOT EXISTS solutions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    size INTEGER NOT NULL,
    c_key TEXT NOT NULL,
    locality INTEGER NOT NULL,
    instance INTEGER NOT NULL,
    run_id TEXT NOT NULL,
    run_time_ns INTEGER NOT NULL,
    objective REAL,
    created_at TEXT NOT NULL,
    UNIQUE (size, c_key, locality, instance)
);

CREATE TABLE IF NOT EXISTS solution_actions (
    solution_id INTEGER NOT NULL REFERENCES solutions(id) ON DELETE CASCADE,
    node TEXT NOT NULL,
    action INTEGER NOT NULL CHECK (action IN (0, 1)),
    PRIMARY KEY (solution_id, node)
);

CREATE TABLE IF NOT EXISTS payoffs (
    size INTEGER NOT NULL,
    instance INTEGER NOT NULL,
    c REAL NOT NULL,
    locality INTEGER NOT NULL,
    realization INTEGER NOT NULL,
    payoff REAL NOT NULL,
    PRIMARY KEY (size, instance, c, locality, realization)
);
CREATE INDEX IF NOT EXISTS idx_payoffs_size ON payoffs(size);
`

// InitSchema creates the schema on a fresh database and migrates older ones.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// schema_version does not exist yet
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}
	if currentVersion > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", currentVersion, SchemaVersion)
	}

	return nil
}

// getSchemaVersion returns the recorded schema version.
// Returns an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, fmt.Errorf("schema_version is empty")
	}
	return int(version.Int64), nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}
