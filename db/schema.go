// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The column types are the common subset of PostgreSQL and SQLite.
const schema = `
-- Dataset metadata (single row)
CREATE TABLE IF NOT EXISTS dataset_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Parties (political groups)
CREATE TABLE IF NOT EXISTS party (
    name TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    category INTEGER NOT NULL DEFAULT 0,
    color TEXT NOT NULL DEFAULT ''
);

-- Constituencies: rule table plus baseline turnout and electorate
CREATE TABLE IF NOT EXISTS constituency (
    name TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    method TEXT NOT NULL CHECK (method IN ('dhondt', 'sainte_lague', 'modified_sainte_lague', 'largest_remainder')),
    quota TEXT NOT NULL DEFAULT '',
    seats INTEGER NOT NULL CHECK (seats >= 1),
    threshold DOUBLE PRECISION NOT NULL CHECK (threshold >= 0 AND threshold < 1),
    turnout TEXT NOT NULL DEFAULT '',
    electorate TEXT NOT NULL DEFAULT '',
    has_forecast BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_constituency_position ON constituency(position);

-- Baseline vote shares
CREATE TABLE IF NOT EXISTS forecast_share (
    constituency TEXT NOT NULL REFERENCES constituency(name) ON DELETE CASCADE,
    party TEXT NOT NULL REFERENCES party(name) ON DELETE CASCADE,
    share TEXT NOT NULL,
    PRIMARY KEY (constituency, party)
);

CREATE INDEX IF NOT EXISTS idx_forecast_share_constituency ON forecast_share(constituency);
`
