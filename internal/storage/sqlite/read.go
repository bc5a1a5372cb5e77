package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/google/uuid"
)

// Record is a persisted history entry with the session that wrote it.
type Record struct {
	Session string
	Entry   repl.Entry
}

// ListAll returns the most recent limit entries across every session, oldest
// first. A limit of zero or less returns everything.
func (s *HistoryStore) ListAll(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	return list(ctx, s.db, limit)
}

// Sessions returns the distinct session ids, most recently active first.
func (s *HistoryStore) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session FROM history GROUP BY session ORDER BY MAX(timestamp) DESC, MAX(rowid) DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite history: scan session: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

func list(ctx context.Context, db *sql.DB, limit int) ([]Record, error) {
	query := `SELECT id, session, command, timestamp, message, table_json, header
		FROM history ORDER BY timestamp DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: list entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite history: iterate entries: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec       Record
		id        string
		tableJSON sql.NullString
		header    int
	)
	if err := rows.Scan(&id, &rec.Session, &rec.Entry.Command, &rec.Entry.Timestamp,
		&rec.Entry.Result.Message, &tableJSON, &header); err != nil {
		return Record{}, fmt.Errorf("sqlite history: scan entry: %w", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Record{}, fmt.Errorf("sqlite history: entry id %q: %w", id, err)
	}
	rec.Entry.ID = parsed
	if tableJSON.Valid {
		var table [][]string
		if err := json.Unmarshal([]byte(tableJSON.String), &table); err != nil {
			return Record{}, fmt.Errorf("sqlite history: decode table for %s: %w", id, err)
		}
		rec.Entry.Result = repl.Table(table, header == 1)
	}
	return rec, nil
}
