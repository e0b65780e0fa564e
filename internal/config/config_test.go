package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRINTDESK_CONFIG_PATH", "")
	t.Setenv("PRINTDESK_STORAGE_ROOT", "")
	t.Setenv("PRINTDESK_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "printdesk-data", cfg.Storage.Root)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRINTDESK_CONFIG_PATH", "")
	t.Setenv("PRINTDESK_STORAGE_ROOT", "/srv/printdesk")
	t.Setenv("PRINTDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/srv/printdesk", cfg.Storage.Root)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  root: /var/lib/printdesk
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PRINTDESK_CONFIG_PATH", path)
	t.Setenv("PRINTDESK_STORAGE_ROOT", "")
	t.Setenv("PRINTDESK_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/printdesk", cfg.Storage.Root)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

	t.Setenv("PRINTDESK_CONFIG_PATH", path)
	t.Setenv("PRINTDESK_STORAGE_ROOT", "")
	t.Setenv("PRINTDESK_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "error", cfg.Log.Level)
	// The file's storage section was absent, so the default root survives.
	require.Equal(t, "printdesk-data", cfg.Storage.Root)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("PRINTDESK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [not a mapping"), 0o600))

	t.Setenv("PRINTDESK_CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}
