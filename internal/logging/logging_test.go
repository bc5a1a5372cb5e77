package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	t.Setenv("MAPREPL_ENV_FILE", filepath.Join(tmp, "none.env"))
	config.Load()
	return tmp
}

func lastLogLine(t *testing.T) string {
	t.Helper()
	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines[len(lines)-1]
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	t.Setenv("MAPREPL_LOGGING_LEVEL", "warn")
	t.Setenv("MAPREPL_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugForcesDebugLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_DEBUG", "true")
	t.Setenv("MAPREPL_LOGGING_LEVEL", "error")
	config.Load()

	require.Equal(t, "debug", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.True(t, strings.HasPrefix(stateDir, tmp))

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	config.Load()

	cfg := FromGlobalConfig()
	cfg.Command = "testcmd"
	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, "maprepl_"))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.True(t, strings.HasSuffix(fname, "_testcmd.log"))
	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("test message", "key1", "value1", "count", 42)
	require.NoError(t, logger.Shutdown())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lastLogLine(t)), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "test message", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.Equal(t, "value1", entry["key1"])
	require.Equal(t, float64(42), entry["count"])
}

func TestRedaction(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	logger.Info("request", "access_token", "pk.abc", "url", "https://api.test/x.json?access_token=pk.abc&limit=1", "normal", "ok")
	require.NoError(t, logger.Shutdown())

	line := lastLogLine(t)
	require.Contains(t, line, `"access_token":"[REDACTED]"`)
	require.Contains(t, line, `access_token=[REDACTED]`)
	require.Contains(t, line, `"normal":"ok"`)
	require.NotContains(t, line, "pk.abc")
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	require.Equal(t, []any{"PASSWORD", redacted}, r.redact([]any{"PASSWORD", "secret"}))
	require.Equal(t, []any{"api-token", redacted}, r.redact([]any{"api-token", "xyz"}))
	require.Equal(t, []any{"mapbox.key", redacted}, r.redact([]any{"mapbox.key", "xyz"}))
	require.Equal(t, []any{"apitoken", "xyz"}, r.redact([]any{"apitoken", "xyz"}))
	require.Equal(t, []any{"secretary", "value"}, r.redact([]any{"secretary", "value"}))

	input := []any{"password", "hidden", "name", "john", "age", 30}
	require.Equal(t, []any{"password", redacted, "name", "john", "age", 30}, r.redact(input))
	require.Equal(t, "hidden", input[1], "input must not be modified")

	require.Equal(t, []any{"password", redacted, "extra"}, r.redact([]any{"password", "hidden", "extra"}))
	require.Empty(t, r.redact([]any{}))
}

func TestRotation(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	t.Setenv("MAPREPL_LOGGING_MAX_FILES", "2")
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		path := filepath.Join(logDir, fmt.Sprintf("maprepl_20250101_12000%d_PID999_test.log", i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		old := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))
	}
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "other.log"), nil, 0600))

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	_, err = os.Stat(filepath.Join(logDir, "maprepl_20250101_120002_PID999_test.log"))
	require.True(t, os.IsNotExist(err), "oldest file should be rotated away")
	_, err = os.Stat(filepath.Join(logDir, "maprepl_20250101_120000_PID999_test.log"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(logDir, "other.log"))
	require.NoError(t, err, "files without the prefix are untouched")
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: "debug", Command: "test", PID: 1})

	logger.With("component", "repl").Debug("dispatched", "command", "load")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "repl", entry["component"])
	require.Equal(t, "load", entry["command"])
	require.Equal(t, "debug", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestGlobalLogger(t *testing.T) {
	setupTest(t)
	t.Setenv("MAPREPL_LOGGING_ENABLED", "true")
	config.Load()

	require.NoError(t, InitGlobal())
	require.NotEmpty(t, CurrentLogFile())
	GetGlobal().Info("global info")
	require.NoError(t, ShutdownGlobal())
	require.Empty(t, CurrentLogFile())
	require.IsType(t, noopLogger{}, GetGlobal())
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("info"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
