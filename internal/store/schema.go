// Package store archives simulation runs in a SQLite database artifact.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the run archive.
const schemaV1 = `
-- One row per archived simulation run (a dual-scenario invocation)
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    label TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- One row per scenario of a run; parameters are stored denormalized so a
-- scenario can be re-run bit-for-bit from its row alone.
CREATE TABLE IF NOT EXISTS scenarios (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    scenario INTEGER NOT NULL,          -- 1 or 2
    trials INTEGER NOT NULL,
    area_m2 REAL NOT NULL,
    device_count INTEGER NOT NULL,
    plant_count INTEGER NOT NULL,
    leaf_area_index REAL NOT NULL,
    light_interception REAL NOT NULL,
    photosynthetic_rate_mean REAL NOT NULL,
    photosynthetic_rate_sigma REAL NOT NULL,
    device_emission_mean_kg REAL NOT NULL,
    device_emission_sigma_kg REAL NOT NULL,
    random_seed INTEGER NOT NULL,
    median_sequestration REAL,
    median_offset_ratio REAL,
    median_credit_yield REAL,
    PRIMARY KEY (run_id, scenario)
);

-- Raw trial samples; offset_ratio is NULL for the NaN sentinel
CREATE TABLE IF NOT EXISTS samples (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    scenario INTEGER NOT NULL,
    trial INTEGER NOT NULL,
    sequestration REAL NOT NULL,
    offset_ratio REAL,
    credit_yield REAL NOT NULL,
    PRIMARY KEY (run_id, scenario, trial)
);
CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id, scenario);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the database schema if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return nil
}
