package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SGME_HTTP_PORT", "")
	t.Setenv("SGME_SQLITE_DSN", "")
	t.Setenv("SGME_DEFAULT_COMMUNITY", "")
	t.Setenv("SGME_PARISH_HEADER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN == "" {
		t.Fatalf("SQLiteDSN default missing")
	}
	if !strings.Contains(cfg.SQLiteDSN, "_pragma=foreign_keys(1)") {
		t.Fatalf("SQLiteDSN default should enforce foreign keys: %q", cfg.SQLiteDSN)
	}
	if cfg.DefaultCommunity != "Matriz" {
		t.Fatalf("DefaultCommunity = %q, want Matriz", cfg.DefaultCommunity)
	}
	if cfg.ParishHeader != "X-Parish-ID" {
		t.Fatalf("ParishHeader = %q, want X-Parish-ID", cfg.ParishHeader)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SGME_HTTP_PORT", "9090")
	t.Setenv("SGME_SQLITE_DSN", "file:test.db")
	t.Setenv("SGME_DEFAULT_COMMUNITY", "Capela")
	t.Setenv("SGME_PARISH_HEADER", "X-Org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPPort != 9090 || cfg.SQLiteDSN != "file:test.db" || cfg.DefaultCommunity != "Capela" || cfg.ParishHeader != "X-Org" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SGME_HTTP_PORT", "not-a-port")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SGME_HTTP_PORT") {
		t.Fatalf("error should name the offending variable: %v", err)
	}
}
