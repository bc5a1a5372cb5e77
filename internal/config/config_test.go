package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("HOME", tmp)
	t.Setenv(EnvPrefix+"CONFIG_PATH", "")
	t.Setenv(EnvPrefix+"ENV_FILE", filepath.Join(tmp, "missing.env"))
	return tmp
}

func TestLoadAndGet(t *testing.T) {
	setupEnv(t)
	Load()

	require.Equal(t, "default", Get("missing", "default"))
	require.Equal(t, "http://localhost:3232", Get("backend_url", ""))
	require.Equal(t, "brief", Get("default_mode", ""))
	require.Equal(t, "map", Get("start_view", ""))
	require.True(t, GetBool("csv_has_headers", false))
	require.Equal(t, 10, GetInt("logging_max_files", 0))
}

func TestComputedPaths(t *testing.T) {
	tmp := setupEnv(t)
	Load()

	assert.Equal(t, filepath.Join(tmp, "config", "maprepl", "commands.yaml"), Get("commands_file", ""))
	assert.Equal(t, filepath.Join(tmp, "state", "maprepl", "history.db"), Get("history_db", ""))
}

func TestConfigLoadingPrecedence(t *testing.T) {
	tmp := setupEnv(t)

	configFile := filepath.Join(tmp, "custom.toml")
	content := `
default_mode = "verbose"
search_match = "substring"
history_limit = 20
csv_has_headers = false
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	t.Setenv(EnvPrefix+"CONFIG_PATH", configFile)
	t.Setenv(EnvPrefix+"HISTORY_LIMIT", "5")

	reset()
	Load()

	require.Equal(t, "5", Get("history_limit", ""), "environment should override config file")
	require.Equal(t, "verbose", Get("default_mode", ""))
	require.Equal(t, "substring", Get("search_match", ""))
	require.False(t, GetBool("csv_has_headers", true))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	setupEnv(t)
	t.Setenv(EnvPrefix+"DEFAULT_MODE", "loud")
	t.Setenv(EnvPrefix+"LOGGING_MAX_FILES", "-3")
	t.Setenv(EnvPrefix+"BACKEND_URL", "not a url")
	t.Setenv(EnvPrefix+"CSV_HAS_HEADERS", "maybe")

	Load()

	assert.Equal(t, "brief", Get("default_mode", ""))
	assert.Equal(t, "10", Get("logging_max_files", ""))
	assert.Equal(t, "http://localhost:3232", Get("backend_url", ""))
	assert.Equal(t, "true", Get("csv_has_headers", ""))
}

func TestURLValidatorTrimsTrailingSlash(t *testing.T) {
	setupEnv(t)
	t.Setenv(EnvPrefix+"BACKEND_URL", "http://example.test:8080/")

	Load()

	assert.Equal(t, "http://example.test:8080", Get("backend_url", ""))
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	tmp := setupEnv(t)
	envFile := filepath.Join(tmp, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MAPREPL_MAPBOX_ACCESS_TOKEN=from-file\nMAPREPL_SEARCH_MATCH=regex\n"), 0644))
	t.Setenv(EnvPrefix+"ENV_FILE", envFile)
	t.Setenv(EnvPrefix+"SEARCH_MATCH", "substring")
	t.Cleanup(func() { os.Unsetenv(EnvPrefix + "MAPBOX_ACCESS_TOKEN") })

	Load()

	assert.Equal(t, "from-file", Get("mapbox_access_token", ""))
	assert.Equal(t, "substring", Get("search_match", ""))
}

func TestSampleConfigOmitsSecrets(t *testing.T) {
	tmp := setupEnv(t)
	t.Setenv(EnvPrefix+"MAPBOX_ACCESS_TOKEN", "pk.secret")

	Load()

	data, err := os.ReadFile(filepath.Join(tmp, "config", "maprepl", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend_url")
	assert.NotContains(t, string(data), "pk.secret")
	assert.NotContains(t, string(data), "mapbox_access_token =")
}

func TestSetNormalizesValue(t *testing.T) {
	setupEnv(t)
	Load()

	Set("default_mode", "VERBOSE")
	assert.Equal(t, "verbose", Get("default_mode", ""))

	Set("default_mode", "nope")
	assert.Equal(t, "brief", Get("default_mode", ""))
}

func TestGetBoolAndIntFallbacks(t *testing.T) {
	setupEnv(t)
	t.Setenv(EnvPrefix+"CUSTOM_FLAG", "yes")
	t.Setenv(EnvPrefix+"CUSTOM_NUM", "abc")
	Load()

	assert.True(t, GetBool("custom_flag", false))
	assert.Equal(t, 7, GetInt("custom_num", 7))
	assert.Equal(t, 3, GetInt("absent", 3))
}
