package config_test

import (
	"testing"

	"github.com/liviin/homecare-api/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DATABASE", "homecare")
	t.Setenv("DB_USER", "homecare")
	t.Setenv("AUTHZ_URL", "http://localhost:8080")
	t.Setenv("AUTHZ_CLIENT_ID", "client-id")
}

// TestLoadDefaults verifies optional values fall back sensibly.
func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DBType != "mysql" {
		t.Errorf("Expected default db type mysql, got %s", cfg.DBType)
	}
	if cfg.DBConnectionLimit != 5 {
		t.Errorf("Expected default connection limit 5, got %d", cfg.DBConnectionLimit)
	}
	if cfg.TwilioAccountSID != "" {
		t.Errorf("Expected messaging unconfigured by default, got %s", cfg.TwilioAccountSID)
	}
}

// TestLoadMissingRequired verifies the required variables are enforced.
func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DATABASE", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected DB_DATABASE to be required")
	}
}

// TestLoadSQLiteSkipsUser verifies DB_USER is optional for sqlite.
func TestLoadSQLiteSkipsUser(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_USER", "")

	if _, err := config.Load(); err != nil {
		t.Errorf("Expected sqlite to skip DB_USER, got %v", err)
	}
}

// TestLoadMissingAuthorizer verifies the authorizer settings are required.
func TestLoadMissingAuthorizer(t *testing.T) {
	setRequired(t)
	t.Setenv("AUTHZ_URL", "")

	if _, err := config.Load(); err == nil {
		t.Error("Expected AUTHZ_URL to be required")
	}
}

// TestLoadBadIntFallsBack verifies a non-numeric limit falls back to the
// default rather than failing startup.
func TestLoadBadIntFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_CONNECTION_LIMIT", "lots")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DBConnectionLimit != 5 {
		t.Errorf("Expected fallback limit 5, got %d", cfg.DBConnectionLimit)
	}
}
