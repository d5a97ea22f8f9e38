package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	def := Default()
	if *cfg != *def {
		t.Errorf("missing file config = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "listen: \":9000\"\nsync_interval_hours: 12\ncheckout_time: \"11:00\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.SyncIntervalHours != 12 {
		t.Errorf("SyncIntervalHours = %d", cfg.SyncIntervalHours)
	}
	if cfg.CheckoutTime != "11:00" {
		t.Errorf("CheckoutTime = %q", cfg.CheckoutTime)
	}

	// Fields absent from the file keep their defaults.
	if cfg.DataDir != "/data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.FetchAttempts != 3 {
		t.Errorf("FetchAttempts = %d", cfg.FetchAttempts)
	}
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "sync_interval_hours: -1\nfetch_timeout_seconds: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SyncIntervalHours != 6 {
		t.Errorf("SyncIntervalHours = %d, want 6", cfg.SyncIntervalHours)
	}
	if cfg.FetchTimeoutSeconds != 30 {
		t.Errorf("FetchTimeoutSeconds = %d, want 30", cfg.FetchTimeoutSeconds)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	if cfg.SyncInterval() != 6*time.Hour {
		t.Errorf("SyncInterval = %v", cfg.SyncInterval())
	}
	if cfg.FetchTimeout() != 30*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout())
	}
}
