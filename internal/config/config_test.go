package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no stray sozin.yaml is picked up.
	t.Chdir(t.TempDir())

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := v.GetString("logging.level"); got != "info" {
		t.Errorf("logging.level = %q, want %q", got, "info")
	}
	if got := v.GetString("logging.format"); got != "console" {
		t.Errorf("logging.format = %q, want %q", got, "console")
	}
	if got := v.GetDuration("scan.timeout"); got != 10*time.Second {
		t.Errorf("scan.timeout = %v, want 10s", got)
	}
	if got := v.GetString("scan.backend"); got != "iw" {
		t.Errorf("scan.backend = %q, want %q", got, "iw")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sozin.yaml")
	data := []byte("logging:\n  level: debug\nscan:\n  timeout: 30s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := v.GetString("logging.level"); got != "debug" {
		t.Errorf("logging.level = %q, want %q", got, "debug")
	}
	if got := v.GetDuration("scan.timeout"); got != 30*time.Second {
		t.Errorf("scan.timeout = %v, want 30s", got)
	}
	// Unset keys keep their defaults.
	if got := v.GetString("scan.backend"); got != "iw" {
		t.Errorf("scan.backend = %q, want %q", got, "iw")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOZIN_SCAN_BACKEND", "nl80211")

	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := v.GetString("scan.backend"); got != "nl80211" {
		t.Errorf("scan.backend = %q, want %q", got, "nl80211")
	}
}
