// Package config loads scanner and library settings from TOML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/henningko/mopidy/internal/audio"
)

const appName = "mopidy-scan"

type Config struct {
	Scanner ScannerConfig `koanf:"scanner"`
	Library LibraryConfig `koanf:"library"`
}

// ScannerConfig holds probe settings.
type ScannerConfig struct {
	TimeoutMs     int `koanf:"timeout_ms"`      // max wall-clock polling time per file
	MinDurationMs int `koanf:"min_duration_ms"` // reject shorter media; -1 accepts everything
}

// LibraryConfig holds the sqlite location and the directories to scan.
type LibraryConfig struct {
	Path    string   `koanf:"path"`
	Sources []string `koanf:"sources"`
}

// Timeout returns the polling deadline as a duration.
func (c ScannerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// MinDuration returns the duration threshold, or audio.NoMinDuration when
// the check is disabled.
func (c ScannerConfig) MinDuration() time.Duration {
	if c.MinDurationMs < 0 {
		return audio.NoMinDuration
	}
	return time.Duration(c.MinDurationMs) * time.Millisecond
}

// Load reads config files in priority order (last wins) and applies
// defaults for anything left unset.
func Load() (*Config, error) {
	return load(configPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Scanner: ScannerConfig{
			TimeoutMs:     int(audio.DefaultTimeout.Milliseconds()),
			MinDurationMs: int(audio.DefaultMinDuration.Milliseconds()),
		},
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Library.Path == "" {
		path, err := xdg.DataFile(filepath.Join(appName, "library.db"))
		if err != nil {
			return nil, err
		}
		cfg.Library.Path = path
	} else {
		cfg.Library.Path = expandPath(cfg.Library.Path)
	}
	for i, src := range cfg.Library.Sources {
		cfg.Library.Sources[i] = expandPath(src)
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}

	// 1. ~/.config/mopidy-scan/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
