package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sift.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Output.Key != "best" {
		t.Errorf("default output key = %q, want best", cfg.Output.Key)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
inputs:
  - a.html
  - b.html
output:
  key: paragraphs
  db_path: out.db
rules:
  coefficients:
    paragraph-length: 1.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Inputs) != 2 {
		t.Errorf("inputs = %d, want 2", len(cfg.Inputs))
	}
	if cfg.Output.Key != "paragraphs" {
		t.Errorf("output key = %q, want paragraphs", cfg.Output.Key)
	}
	if cfg.Output.DBPath != "out.db" {
		t.Errorf("db path = %q, want out.db", cfg.Output.DBPath)
	}
	if got := cfg.Coefficient("paragraph-length"); got != 1.5 {
		t.Errorf("coefficient = %v, want 1.5", got)
	}
	if got := cfg.Coefficient("unset"); got != 1 {
		t.Errorf("unset coefficient = %v, want default 1", got)
	}
}

func TestLoadRejectsNegativeCoefficient(t *testing.T) {
	path := writeConfig(t, `
rules:
  coefficients:
    heading: -2
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a negative coefficient")
	}
}

func TestLoadRejectsEmptyOutputKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an empty output key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() succeeded on a missing file")
	}
}
