package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ksoares/evreg/internal/registry"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath != "" {
		t.Errorf("data path = %q, want empty", cfg.DataPath)
	}
	if cfg.Duration() != registry.DefaultEventDuration {
		t.Errorf("duration = %v, want %v", cfg.Duration(), registry.DefaultEventDuration)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "data_path = \"/tmp/evreg/registry.json\"\nevent_duration = \"90m\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataPath != "/tmp/evreg/registry.json" {
		t.Errorf("data path = %q", cfg.DataPath)
	}
	if cfg.Duration() != 90*time.Minute {
		t.Errorf("duration = %v, want 90m", cfg.Duration())
	}
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("event_duration = \"soon\""), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("unparsable config should be an error")
	}
}

func TestResolveDataPath(t *testing.T) {
	// Env var wins over everything.
	t.Setenv(EnvVarData, "/env/registry.json")
	cfg := Config{DataPath: "/cfg/registry.json"}
	got, err := cfg.ResolveDataPath()
	if err != nil {
		t.Fatalf("ResolveDataPath: %v", err)
	}
	if got != "/env/registry.json" {
		t.Errorf("path = %q, want env override", got)
	}

	// Config file value next.
	t.Setenv(EnvVarData, "")
	got, err = cfg.ResolveDataPath()
	if err != nil {
		t.Fatalf("ResolveDataPath: %v", err)
	}
	if got != "/cfg/registry.json" {
		t.Errorf("path = %q, want config value", got)
	}

	// Standard location last.
	t.Setenv("HOME", t.TempDir())
	got, err = Config{}.ResolveDataPath()
	if err != nil {
		t.Fatalf("ResolveDataPath: %v", err)
	}
	if filepath.Base(got) != "registry.json" {
		t.Errorf("path = %q, want default registry.json location", got)
	}
}
