package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/henningko/mopidy/internal/audio"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scanner.Timeout() != audio.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Scanner.Timeout(), audio.DefaultTimeout)
	}
	if cfg.Scanner.MinDuration() != audio.DefaultMinDuration {
		t.Errorf("MinDuration = %v, want %v", cfg.Scanner.MinDuration(), audio.DefaultMinDuration)
	}
	if cfg.Library.Path == "" {
		t.Error("Library.Path not defaulted")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
[scanner]
timeout_ms = 250
min_duration_ms = -1

[library]
path = "/tmp/lib.db"
sources = ["/music", "/more-music"]
`)

	cfg, err := load([]string{path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scanner.Timeout() != 250*time.Millisecond {
		t.Errorf("Timeout = %v", cfg.Scanner.Timeout())
	}
	if cfg.Scanner.MinDuration() != audio.NoMinDuration {
		t.Errorf("MinDuration = %v, want NoMinDuration", cfg.Scanner.MinDuration())
	}
	if cfg.Library.Path != "/tmp/lib.db" {
		t.Errorf("Library.Path = %q", cfg.Library.Path)
	}
	if len(cfg.Library.Sources) != 2 || cfg.Library.Sources[0] != "/music" {
		t.Errorf("Sources = %v", cfg.Library.Sources)
	}
}

func TestLoad_LaterFileWins(t *testing.T) {
	base := writeConfig(t, "[scanner]\ntimeout_ms = 100\n")
	override := writeConfig(t, "[scanner]\ntimeout_ms = 900\n")

	cfg, err := load([]string{base, override})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scanner.Timeout() != 900*time.Millisecond {
		t.Errorf("Timeout = %v, want 900ms", cfg.Scanner.Timeout())
	}
}

func TestLoad_MissingFilesIgnored(t *testing.T) {
	cfg, err := load([]string{"/no/such/config.toml"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scanner.Timeout() != audio.DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Scanner.Timeout())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandPath("~/music"); got != filepath.Join(home, "music") {
		t.Errorf("expandPath = %q", got)
	}
	if got := expandPath("/abs/music"); got != "/abs/music" {
		t.Errorf("expandPath = %q", got)
	}
}
