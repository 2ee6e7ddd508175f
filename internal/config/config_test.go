package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/helixml/molsync/domain/colour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"LOG_LEVEL", "LOG_FORMAT", "DIALECT", "MAX_CHUNK_LENGTH", "HIDDEN_COLOUR",
	"DUPLICATE_POLICY", "HIDDEN_POLICY", "DB_URL", "WORKER_COUNT", "WATCH_INTERVAL_SECONDS",
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range envNames {
		key := EnvPrefix + "_" + name
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(key) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, "chimera", cfg.Dialect())
	assert.Equal(t, 32000, cfg.MaxChunkLength())
	assert.Equal(t, colour.Hidden, cfg.HiddenColour())
	assert.Equal(t, "first", cfg.DuplicatePolicy())
	assert.Equal(t, "override", cfg.HiddenPolicy())
	assert.Empty(t, cfg.DBURL())
	assert.False(t, cfg.HistoryEnabled())
	assert.Equal(t, 1, cfg.WorkerCount())
	assert.Equal(t, 2*time.Second, cfg.WatchInterval())
}

func TestLoadFromEnv_DefaultsMatchConfig(t *testing.T) {
	clearEnvVars(t)

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg, err := env.ToAppConfig()
	require.NoError(t, err)

	assert.Equal(t, NewAppConfig(), cfg)
	assert.Equal(t, DefaultHiddenColour, env.HiddenColour)
	assert.Equal(t, DefaultMaxChunkLength, env.MaxChunkLength)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("MOLSYNC_LOG_FORMAT", "JSON")
	t.Setenv("MOLSYNC_DIALECT", " JMol ")
	t.Setenv("MOLSYNC_MAX_CHUNK_LENGTH", "0")
	t.Setenv("MOLSYNC_HIDDEN_COLOUR", "10,20,30")
	t.Setenv("MOLSYNC_DUPLICATE_POLICY", "consecutive")
	t.Setenv("MOLSYNC_HIDDEN_POLICY", "computed")
	t.Setenv("MOLSYNC_DB_URL", "sqlite:///tmp/molsync.db")
	t.Setenv("MOLSYNC_WORKER_COUNT", "4")
	t.Setenv("MOLSYNC_WATCH_INTERVAL_SECONDS", "0.5")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg, err := env.ToAppConfig()
	require.NoError(t, err)

	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, "jmol", cfg.Dialect())
	assert.Equal(t, 0, cfg.MaxChunkLength())
	assert.Equal(t, colour.New(10, 20, 30), cfg.HiddenColour())
	assert.Equal(t, "consecutive", cfg.DuplicatePolicy())
	assert.Equal(t, "computed", cfg.HiddenPolicy())
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, 4, cfg.WorkerCount())
	assert.Equal(t, 500*time.Millisecond, cfg.WatchInterval())
}

func TestToAppConfig_InvalidHiddenColour(t *testing.T) {
	_, err := EnvConfig{HiddenColour: "grey"}.ToAppConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, colour.ErrInvalidColour)
	assert.Contains(t, err.Error(), "MOLSYNC_HIDDEN_COLOUR")
}

func TestLoadFromEnv_InvalidNumber(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("MOLSYNC_WORKER_COUNT", "many")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestWithWorkerCount_IgnoresNonPositive(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithWorkerCount(0))
	assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount())
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithDialect("chimerax"), WithDBURL("postgres://u:p@h/db"))

	assert.Equal(t, "chimera", base.Dialect())
	assert.Equal(t, "chimerax", changed.Dialect())
	assert.True(t, changed.HistoryEnabled())
}

func TestLogAttrs_MasksPostgres(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDBURL("postgres://user:secret@db/molsync"))

	for _, a := range cfg.LogAttrs() {
		assert.NotContains(t, a.Value.String(), "secret")
	}
	assert.Equal(t, "(disabled)", NewAppConfig().maskedDBURL())
	assert.Equal(t, "sqlite:///x.db", NewAppConfigWithOptions(WithDBURL("sqlite:///x.db")).maskedDBURL())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MOLSYNC_DIALECT=chimerax\nMOLSYNC_WORKER_COUNT=3\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "chimerax", cfg.Dialect())
	assert.Equal(t, 3, cfg.WorkerCount())
}

func TestLoadConfig_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("MOLSYNC_DIALECT", "jmol")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MOLSYNC_DIALECT=chimerax\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "jmol", cfg.Dialect())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
