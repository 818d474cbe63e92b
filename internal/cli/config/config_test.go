package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Mode != ModeProduction {
		t.Errorf("Mode = %q, want production", cfg.Mode)
	}
	if cfg.Output != "table" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if !strings.HasSuffix(path, filepath.Join(".shopfront", "cli.yaml")) {
		t.Errorf("DefaultConfigPath() = %q", path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != "http://localhost:8000" || cfg.API.Timeout != 30*time.Second {
		t.Errorf("Load() = %+v, want defaults", cfg.API)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
api:
  url: http://shop.internal:8000
  timeout: 5s
mode: Development
log:
  level: info
output: json
`)
	t.Setenv("SHOP_API_URL", "http://from-env:9000")
	t.Setenv("SHOP_LOG_FORMAT", "json")
	stateDir := t.TempDir()
	t.Setenv("SHOP_STATE_DIR", stateDir)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.URL != "http://from-env:9000" {
		t.Errorf("API.URL = %q, env should win over file", cfg.API.URL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if !cfg.Development() {
		t.Errorf("Mode = %q, want development", cfg.Mode)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.EffectiveLogLevel() != "debug" {
		t.Errorf("EffectiveLogLevel() = %q, development should force debug", cfg.EffectiveLogLevel())
	}
	if cfg.SessionDir() != filepath.Join(stateDir, "session") {
		t.Errorf("SessionDir() = %q", cfg.SessionDir())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"mode":    "mode: staging\n",
		"output":  "output: csv\n",
		"level":   "log:\n  level: loud\n",
		"timeout": "api:\n  timeout: 0s\n",
		"ca file": "api:\n  ca_file: /nonexistent/ca.pem\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			if err == nil {
				t.Fatal("Load() should fail validation")
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestEffectiveLogLevel_Production(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "error"
	if got := cfg.EffectiveLogLevel(); got != "error" {
		t.Errorf("EffectiveLogLevel() = %q, want error", got)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cli.yaml")

	cfg := Default()
	cfg.API.URL = "https://shop.example.com"
	cfg.API.Timeout = 10 * time.Second
	cfg.Output = "yaml"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.API.URL != cfg.API.URL || loaded.API.Timeout != cfg.API.Timeout || loaded.Output != "yaml" {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}
