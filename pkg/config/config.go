// Package config loads the optional gitmend configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the gitmend configuration. Every field is optional;
// Default fills in working values.
type Config struct {
	// BackupRoot is where working-tree snapshots are stored.
	BackupRoot string `toml:"backup_root"`
	// RunRoot is where per-run journals and reports are stored.
	RunRoot string `toml:"run_root"`
	// PauseService names a systemd unit to stop for the duration of a
	// repair run (e.g. a background auto-push daemon). Empty disables.
	PauseService string `toml:"pause_service"`
	// HistoryDir overrides the editor local-history directory used as a
	// fallback source when healing lost files.
	HistoryDir string `toml:"history_dir"`
	// MaxReportLines caps how many residual error lines the final
	// report prints before truncating.
	MaxReportLines int `toml:"max_report_lines"`
	// LocalTimeoutSeconds bounds captured local git commands.
	LocalTimeoutSeconds int `toml:"local_timeout_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		MaxReportLines:      8,
		LocalTimeoutSeconds: 10,
	}
}

// LocalTimeout returns the configured local command timeout.
func (c Config) LocalTimeout() time.Duration {
	return time.Duration(c.LocalTimeoutSeconds) * time.Second
}

// AbsBackupRoot resolves the backup root, defaulting to ~/.gitmend/stash.
func (c Config) AbsBackupRoot() string {
	if c.BackupRoot != "" {
		return expandPath(c.BackupRoot)
	}
	return filepath.Join(homeDir(), ".gitmend", "stash")
}

// AbsRunRoot resolves the run directory root, defaulting to ~/.gitmend/runs.
func (c Config) AbsRunRoot() string {
	if c.RunRoot != "" {
		return expandPath(c.RunRoot)
	}
	return filepath.Join(homeDir(), ".gitmend", "runs")
}

// AbsHistoryDir resolves the editor history directory, defaulting to
// VS Code's per-user history location.
func (c Config) AbsHistoryDir() string {
	if c.HistoryDir != "" {
		return expandPath(c.HistoryDir)
	}
	return filepath.Join(homeDir(), ".config", "Code", "User", "History")
}

// homeDir returns the user's home directory, falling back to the
// temporary directory when it cannot be determined.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

// configPath returns the path to the config file.
func configPath() string {
	return filepath.Join(homeDir(), ".config", "gitmend", "config.toml")
}

// Load reads ~/.config/gitmend/config.toml. A missing file is not an
// error: defaults are returned.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MaxReportLines <= 0 {
		cfg.MaxReportLines = Default().MaxReportLines
	}
	if cfg.LocalTimeoutSeconds <= 0 {
		cfg.LocalTimeoutSeconds = Default().LocalTimeoutSeconds
	}
	return cfg, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" {
		return homeDir()
	}
	if len(path) >= 2 && path[:2] == "~/" {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
