package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/cristianoliveira/maprepl/internal/storage/sqlite"
)

func TestNewForBackendSelectsMemoryByDefault(t *testing.T) {
	for _, name := range []string{"", "memory", " MEMORY "} {
		store := NewForBackend(name, "", nil)
		assert.IsType(t, &repl.MemoryStore{}, store, name)
	}
}

func TestNewForBackendSelectsSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")

	store := NewForBackend("sqlite", dbPath, nil)
	require.IsType(t, &sqlite.HistoryStore{}, store)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestNewForBackendFallsBackToMemory(t *testing.T) {
	assert.IsType(t, &repl.MemoryStore{}, NewForBackend("unknown", "", nil))
	assert.IsType(t, &repl.MemoryStore{}, NewForBackend("sqlite", "", nil))
}
