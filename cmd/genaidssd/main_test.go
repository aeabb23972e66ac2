package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  addr: \":9900\"\nexport:\n  sink: local\n  dir: /tmp/exports\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GENAIDSS_METRICS_ADDR", ":9901")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9900" {
		t.Errorf("Addr = %q, want :9900", cfg.Server.Addr)
	}
	if cfg.Server.MetricsAddr != ":9901" {
		t.Errorf("MetricsAddr = %q, want env override :9901", cfg.Server.MetricsAddr)
	}
	if cfg.Wizard.DefaultDepartment != "hcd" {
		t.Errorf("DefaultDepartment = %q, want default hcd", cfg.Wizard.DefaultDepartment)
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}
