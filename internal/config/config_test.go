package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"remixd/internal/config"
)

func TestDefaultsValidate(t *testing.T) {
	loaded, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file to be reported as absent")
	}
	if loaded.Engine.Binary != "ffmpeg" {
		t.Fatalf("unexpected engine binary: %q", loaded.Engine.Binary)
	}
	if loaded.Engine.TimeoutSeconds != 300 {
		t.Fatalf("unexpected timeout: %d", loaded.Engine.TimeoutSeconds)
	}
	if loaded.Engine.Bitrate != "320k" {
		t.Fatalf("unexpected bitrate: %q", loaded.Engine.Bitrate)
	}
	if !strings.HasSuffix(loaded.Server.Bind, ":8000") {
		t.Fatalf("unexpected bind: %q", loaded.Server.Bind)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[server]
bind = "127.0.0.1:9000"

[paths]
work_dir = "` + filepath.Join(dir, "work") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[engine]
timeout_seconds = 10
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Server.Bind != "127.0.0.1:9000" {
		t.Fatalf("unexpected bind: %q", cfg.Server.Bind)
	}
	if cfg.Engine.TimeoutSeconds != 10 {
		t.Fatalf("unexpected timeout: %d", cfg.Engine.TimeoutSeconds)
	}
	if cfg.Engine.Binary != "ffmpeg" {
		t.Fatalf("expected default binary to survive partial config, got %q", cfg.Engine.Binary)
	}
}

func TestPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasSuffix(cfg.Server.Bind, ":9999") {
		t.Fatalf("expected PORT override in bind, got %q", cfg.Server.Bind)
	}
}

func TestPortEnvOverrideRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for invalid PORT value")
	}
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[engine]\ntimeout_seconds = -5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config failed validation: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, d := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", d)
		}
	}
}
