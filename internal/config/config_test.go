package config

import (
	"strings"
	"testing"
	"time"

	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := fromEnv(env(nil))
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Errorf("server defaults = %+v", cfg)
	}
	if cfg.API.BaseURL != silvertalent.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != listing.DefaultTimeout || cfg.API.SearchDebounce != listing.DefaultDebounce {
		t.Errorf("durations = %v / %v", cfg.API.RequestTimeout, cfg.API.SearchDebounce)
	}
	if cfg.SheetsEnabled() {
		t.Error("sheets should be disabled without credentials")
	}
}

func TestFromEnv_overrides(t *testing.T) {
	t.Parallel()

	cfg, err := fromEnv(env(map[string]string{
		"PORT":                           "9090",
		"SILVER_TALENT_API_URL":          "http://localhost:5000/api/",
		"REQUEST_TIMEOUT":                "5s",
		"SEARCH_DEBOUNCE":                "2s",
		"GOOGLE_SHEETS_CREDENTIALS_PATH": "/secrets/sa.json",
		"GOOGLE_SHEETS_SPREADSHEET_ID":   "sheet-1",
	}))
	if err != nil {
		t.Fatalf("fromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.API.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.API.RequestTimeout)
	}
	if cfg.API.SearchDebounce != listing.MaxDebounce {
		t.Errorf("SearchDebounce = %v, want clamped to %v", cfg.API.SearchDebounce, listing.MaxDebounce)
	}
	if !cfg.SheetsEnabled() {
		t.Error("sheets should be enabled")
	}
}

func TestFromEnv_invalidDurationsAggregated(t *testing.T) {
	t.Parallel()

	_, err := fromEnv(env(map[string]string{
		"REQUEST_TIMEOUT": "soon",
		"SEARCH_DEBOUNCE": "-1s",
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"REQUEST_TIMEOUT=soon", "SEARCH_DEBOUNCE=-1s"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	var cfg Config
	err := cfg.RequireAdmin()
	if err == nil || !strings.Contains(err.Error(), "ADMIN_EMAIL, ADMIN_PASSWORD_HASH") {
		t.Errorf("err = %v", err)
	}

	cfg.Admin.Email = "a@b.co"
	cfg.Admin.PasswordHash = "$2a$10$x"
	if err := cfg.RequireAdmin(); err != nil {
		t.Errorf("complete admin config rejected: %v", err)
	}
}
