package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/maprepl/internal/config"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir+"/config")
	t.Setenv("XDG_STATE_HOME", dir+"/state")
	t.Setenv("MAPREPL_HISTORY_BACKEND", "memory")
	t.Setenv("MAPREPL_LOGGING_ENABLED", "false")
}

func TestRunReturnsZeroOnSuccess(t *testing.T) {
	isolateConfig(t)
	assert.Equal(t, 0, run([]string{"version"}, func() error { return nil }))
}

func TestRunReturnsOneOnFailure(t *testing.T) {
	isolateConfig(t)
	assert.Equal(t, 1, run([]string{"version"}, func() error { return errors.New("boom") }))
}

func TestNewAppDispatchesBuiltins(t *testing.T) {
	isolateConfig(t)
	t.Setenv("MAPREPL_DEFAULT_MODE", "verbose")
	config.Load()

	a, err := newApp(context.Background())
	require.NoError(t, err)
	defer a.Close()

	entry, ok, err := a.Run(context.Background(), "help")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, entry.Result.Message, "broadband")
	assert.Contains(t, entry.Result.Message, "load")
	assert.Len(t, a.Entries(), 1)
	assert.Equal(t, "verbose", string(a.Mode()))
}

func TestNewAppFallsBackToExactMatcher(t *testing.T) {
	isolateConfig(t)
	config.Load()
	config.Set("search_match", "fuzzy")
	require.Equal(t, "exact", config.Get("search_match", ""))

	a, err := newApp(context.Background())
	require.NoError(t, err)
	defer a.Close()
}

func TestNewMatcher(t *testing.T) {
	for _, name := range []string{"exact", "substring", "regex"} {
		m, err := newMatcher(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.Name())
	}

	_, err := newMatcher("fuzzy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search matcher")
}
