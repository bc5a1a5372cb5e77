// Package sqlite persists REPL history to a SQLite database.
//
// Every session writes its entries under its own session id. The store's
// repl.Store view only covers the current session, so a new session starts
// with an empty history while older sessions remain queryable with ListAll.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// HistoryStore implements repl.Store on top of SQLite.
type HistoryStore struct {
	db      *sql.DB
	session string
	log     logging.Logger

	mu      sync.RWMutex
	closed  bool
	entries []repl.Entry
	results map[uuid.UUID]repl.Result
}

var _ repl.Store = (*HistoryStore)(nil)

// Option configures a HistoryStore.
type Option func(*HistoryStore)

// WithSession overrides the generated session id.
func WithSession(id string) Option {
	return func(s *HistoryStore) { s.session = id }
}

func WithLogger(l logging.Logger) Option {
	return func(s *HistoryStore) { s.log = l }
}

// Open opens or creates the database at dbPath and starts a new session.
func Open(dbPath string, opts ...Option) (*HistoryStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite history: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: open db: %w", err)
	}
	s := &HistoryStore{
		db:      db,
		session: uuid.NewString(),
		log:     logging.Nop(),
		results: make(map[uuid.UUID]repl.Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.log = s.log.With("component", "history", "session", s.session)
	return s, nil
}

func (s *HistoryStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite history: set busy timeout: %w", err)
	}
	return migrate(s.db)
}

// Session is the id under which this store writes.
func (s *HistoryStore) Session() string {
	return s.session
}

// Append writes e and then exposes it in the session view.
func (s *HistoryStore) Append(e repl.Entry) error {
	tableJSON, err := encodeTable(e.Result)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, exists := s.results[e.ID]; exists {
		return repl.ErrDuplicateEntry
	}
	_, err = s.db.Exec(
		`INSERT INTO history (id, session, command, timestamp, message, table_json, header) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), s.session, e.Command, e.Timestamp, e.Result.Message, tableJSON, boolToInt(e.Result.Header),
	)
	if err != nil {
		s.log.Error("insert failed", "id", e.ID.String(), "error", err.Error())
		return fmt.Errorf("sqlite history: insert entry: %w", err)
	}
	s.results[e.ID] = e.Result
	s.entries = append(s.entries, e)
	return nil
}

func (s *HistoryStore) Entries() []repl.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repl.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *HistoryStore) Result(id uuid.UUID) (repl.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	return r, ok
}

func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close closes the underlying connection. It is safe to call twice.
func (s *HistoryStore) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func encodeTable(r repl.Result) (sql.NullString, error) {
	if !r.IsTable() {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(r.Table)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("sqlite history: encode table: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
