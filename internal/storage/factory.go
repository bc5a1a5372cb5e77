// Package storage selects the REPL history backend.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/maprepl/internal/colors"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/cristianoliveira/maprepl/internal/storage/sqlite"
)

const (
	// BackendMemory keeps history in process only.
	BackendMemory = "memory"
	// BackendSQLite additionally writes history to {state_dir}/history.db.
	BackendSQLite = "sqlite"

	historyDBFileName = "history.db"
)

var _ repl.Store = (*sqlite.HistoryStore)(nil)

// NewFromConfig creates the history backend named by history_backend.
func NewFromConfig(log logging.Logger) repl.Store {
	return NewForBackend(config.Get("history_backend", BackendMemory), DBPath(), log)
}

// DBPath is the configured SQLite history location.
func DBPath() string {
	if p := config.Get("history_db", ""); p != "" {
		return p
	}
	return filepath.Join(config.Get("state_dir", "."), historyDBFileName)
}

// NewForBackend creates the named backend. Failures to open SQLite fall
// back to memory with a warning so the REPL always starts.
func NewForBackend(backend, dbPath string, log logging.Logger) repl.Store {
	if log == nil {
		log = logging.Nop()
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return repl.NewMemoryStore()
	case BackendSQLite:
		store, err := sqlite.Open(dbPath, sqlite.WithLogger(log))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite history, falling back to memory: %v", err))
			return repl.NewMemoryStore()
		}
		return store
	default:
		colors.Warning(fmt.Sprintf("unknown history backend '%s', falling back to memory", backend))
		return repl.NewMemoryStore()
	}
}
