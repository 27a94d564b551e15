package kirana

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kirana.yaml")
	if err := os.WriteFile(path, []byte("environment: test\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("expected environment test, got %q", cfg.Environment)
	}
	if cfg.Vendors.Model.Provider != "ollama" {
		t.Fatalf("expected default model vendor ollama, got %q", cfg.Vendors.Model.Provider)
	}
	if cfg.Vendors.Search.Provider != "arxiv" {
		t.Fatalf("expected default search vendor arxiv, got %q", cfg.Vendors.Search.Provider)
	}
	if cfg.Context.MaxHistory != 10 {
		t.Fatalf("expected default max history 10, got %d", cfg.Context.MaxHistory)
	}
	if !cfg.Privacy.RedactPII {
		t.Fatalf("expected redaction enabled by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kirana.yaml")
	content := `
vendors:
  model:
    provider: mock
    settings:
      response_text: "hello"
context:
  max_history: 4
gateway:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Vendors.Model.Provider != "mock" {
		t.Fatalf("expected mock vendor, got %q", cfg.Vendors.Model.Provider)
	}
	if got := cfg.Vendors.Model.Settings["response_text"]; got != "hello" {
		t.Fatalf("expected settings passthrough, got %v", got)
	}
	if cfg.Context.MaxHistory != 4 {
		t.Fatalf("expected max history 4, got %d", cfg.Context.MaxHistory)
	}
	if cfg.Gateway.Addr != ":9000" {
		t.Fatalf("expected gateway addr override, got %q", cfg.Gateway.Addr)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
