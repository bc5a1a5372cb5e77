package sqlite

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
	id         TEXT PRIMARY KEY,
	session    TEXT NOT NULL,
	command    TEXT NOT NULL,
	timestamp  INTEGER NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	table_json TEXT,
	header     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_history_session ON history(session, timestamp);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
`

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("sqlite history: read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("sqlite history: schema version %d is newer than supported %d", version, schemaVersion)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite history: create schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("sqlite history: set schema version: %w", err)
	}
	return nil
}
