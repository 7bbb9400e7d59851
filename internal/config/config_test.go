package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"DIRECTORY", "TIMEZONE", "SECONDS", "DATA_DIR", "LOG_LEVEL", "LOG_FILE", "EDITOR"} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Default()
	if *cfg != want {
		t.Errorf("expected defaults %+v, got %+v", want, *cfg)
	}
	if !strings.HasSuffix(cfg.DataDir, filepath.Join("data", "contexere")) {
		t.Errorf("expected data dir under XDG_DATA_HOME, got %s", cfg.DataDir)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
directory: ~/notebooks
timezone: Europe/Rome
seconds: true
editor: code --wait
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Directory != "~/notebooks" || cfg.Timezone != "Europe/Rome" || !cfg.Seconds {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Editor != "code --wait" {
		t.Errorf("expected editor from file, got %q", cfg.Editor)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log level kept, got %s", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
timezone: Europe/Rome
data_dir: /from/file
`)
	t.Setenv("CONTEXERE_TIMEZONE", "Asia/Tokyo")
	t.Setenv("CONTEXERE_DATA_DIR", "/from/env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("expected env timezone, got %s", cfg.Timezone)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("expected env data dir, got %s", cfg.DataDir)
	}
}

func TestLoad_DefaultPathUsedWhenPresent(t *testing.T) {
	isolate(t)
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from default path, got %s", cfg.LogLevel)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.level); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}

	var buf bytes.Buffer
	cfg := &Config{LogLevel: "info"}
	logger := cfg.NewLogger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "key=value") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}
