package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the journal schema. Statements are idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entry_edits (
		id         TEXT PRIMARY KEY,
		week       INTEGER NOT NULL CHECK(week BETWEEN 1 AND 52),
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entry_edits_week ON entry_edits(week)`,

	`CREATE TABLE IF NOT EXISTS stage_events (
		id         TEXT PRIMARY KEY,
		from_stage INTEGER NOT NULL CHECK(from_stage BETWEEN 0 AND 7),
		to_stage   INTEGER NOT NULL CHECK(to_stage BETWEEN 0 AND 7),
		value      REAL NOT NULL,
		cue_played INTEGER NOT NULL DEFAULT 0 CHECK(cue_played IN (0, 1)),
		edit_id    TEXT REFERENCES entry_edits(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL
	)`,
}
