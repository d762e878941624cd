package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8, cfg.MaxReportLines)
	assert.Equal(t, 10*time.Second, cfg.LocalTimeout())
	assert.Empty(t, cfg.PauseService)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
backup_root = "/var/backups/gitmend"
pause_service = "autopush.service"
max_report_lines = 20
local_timeout_seconds = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/backups/gitmend", cfg.AbsBackupRoot())
	assert.Equal(t, "autopush.service", cfg.PauseService)
	assert.Equal(t, 20, cfg.MaxReportLines)
	assert.Equal(t, 30*time.Second, cfg.LocalTimeout())
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backup_root = [broken"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFromClampsNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_report_lines = -1\nlocal_timeout_seconds = 0\n"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default().MaxReportLines, cfg.MaxReportLines)
	assert.Equal(t, Default().LocalTimeoutSeconds, cfg.LocalTimeoutSeconds)
}

func TestDefaultRoots(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	assert.Equal(t, filepath.Join(home, ".gitmend", "stash"), cfg.AbsBackupRoot())
	assert.Equal(t, filepath.Join(home, ".gitmend", "runs"), cfg.AbsRunRoot())
	assert.Equal(t, filepath.Join(home, ".config", "Code", "User", "History"), cfg.AbsHistoryDir())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "x", "y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}
