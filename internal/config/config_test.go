package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsEnvAndFile(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("dataset: /data/gallstone.csv\nexport_workers: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DASHBOARD_FORMAT", "yaml")

	c, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Dataset != "/data/gallstone.csv" {
		t.Fatalf("dataset = %q", c.Dataset)
	}
	if c.ExportWorkers != 2 {
		t.Fatalf("export_workers = %d, want 2", c.ExportWorkers)
	}
	if c.Format != "yaml" {
		t.Fatalf("format = %q, want env override yaml", c.Format)
	}
	if c.HTTPTimeoutSec != 30 || c.LogLevel != "info" {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{Format: "json", HTTPTimeoutSec: 30, ExportWorkers: 4, LogLevel: "info"}
	if err := c.Set("dataset", "https://example.org/gallstone.csv"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Dataset != "https://example.org/gallstone.csv" {
		t.Fatalf("dataset = %q", got.Dataset)
	}
}

func TestSetValidates(t *testing.T) {
	c := &Global{}
	bad := map[string]string{
		"format":         "pdf",
		"export_workers": "0",
		"log_level":      "loud",
		"nope":           "x",
	}
	for k, v := range bad {
		if err := c.Set(k, v); err == nil {
			t.Fatalf("Set(%s, %s) should fail", k, v)
		}
	}
	for _, k := range Keys {
		if _, err := c.Get(k); err != nil {
			t.Fatalf("Get(%s): %v", k, err)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("DASHBOARD_SHEET=Patients\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("DASHBOARD_SHEET", "")
	os.Unsetenv("DASHBOARD_SHEET")
	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DASHBOARD_SHEET"); got != "Patients" {
		t.Fatalf("DASHBOARD_SHEET = %q", got)
	}
}
