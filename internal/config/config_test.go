package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Practice.SamplesDir != nil || cfg.Practice.Theme != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigPractice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
samples-dir = "/tmp/samples"
theme = "light"
watch = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.SamplesDir == nil || *cfg.Practice.SamplesDir != "/tmp/samples" {
		t.Fatalf("unexpected samples-dir: %v", cfg.Practice.SamplesDir)
	}
	if cfg.Practice.Theme == nil || *cfg.Practice.Theme != "light" {
		t.Fatalf("unexpected theme: %v", cfg.Practice.Theme)
	}
	if cfg.Practice.Watch == nil || !*cfg.Practice.Watch {
		t.Fatalf("expected watch = true")
	}
	if cfg.Practice.Sample != nil {
		t.Fatalf("expected unset sample")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nwords = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "codetype", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultSamplesDir(); got != filepath.Join("/cfg", "codetype", "samples") {
		t.Fatalf("unexpected samples dir %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "codetype", "codetype.db") {
		t.Fatalf("unexpected db path %s", got)
	}
}
