package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.MaxUsers != 3 {
		t.Fatalf("expected room capacity 3, got %d", cfg.MaxUsers)
	}
	if cfg.HistoryReplay != 20 || cfg.HistoryQuery != 50 {
		t.Fatalf("unexpected history counts: %d/%d", cfg.HistoryReplay, cfg.HistoryQuery)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected upload limit: %d", cfg.MaxUploadBytes)
	}
}

func TestUpdateFromSkipsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":9999", MaxUsers: 5})

	if cfg.Addr != ":9999" {
		t.Fatalf("addr not overridden: %s", cfg.Addr)
	}
	if cfg.MaxUsers != 5 {
		t.Fatalf("max users not overridden: %d", cfg.MaxUsers)
	}
	// Untouched fields keep their defaults.
	if cfg.HistoryReplay != 20 {
		t.Fatalf("history replay changed unexpectedly: %d", cfg.HistoryReplay)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout changed unexpectedly: %v", cfg.ShutdownTimeout)
	}
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("resolved path %q, want %q", resolved, path)
	}
	if cfg.MaxUsers != 3 {
		t.Fatalf("unexpected max users: %d", cfg.MaxUsers)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9000\"\nmax_users: 2\nupload_dir: blobs\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MaxUsers != 2 || cfg.UploadDir != "blobs" {
		t.Fatalf("config file values not applied: %+v", cfg)
	}
	// Unset keys fall back to defaults.
	if cfg.HistoryQuery != 50 {
		t.Fatalf("unexpected history query count: %d", cfg.HistoryQuery)
	}
}
