package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// Config contains runtime settings shared by every command
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	API struct {
		BaseURL        string
		RequestTimeout time.Duration
		SearchDebounce time.Duration
	}
	Admin struct {
		Email        string
		PasswordHash string
	}
	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
	}
}

// Load populates config from the environment. Values from a .env file in the
// working directory fill in whatever the environment leaves unset.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.API.BaseURL = silvertalent.DefaultBaseURL
	cfg.API.RequestTimeout = listing.DefaultTimeout
	cfg.API.SearchDebounce = listing.DefaultDebounce

	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := getenv("SILVER_TALENT_API_URL"); v != "" {
		cfg.API.BaseURL = strings.TrimSuffix(v, "/")
	}

	var invalid []string

	if v := getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "REQUEST_TIMEOUT="+v)
		} else {
			cfg.API.RequestTimeout = d
		}
	}

	if v := getenv("SEARCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "SEARCH_DEBOUNCE="+v)
		} else {
			cfg.API.SearchDebounce = listing.ClampDebounce(d)
		}
	}

	cfg.Admin.Email = getenv("ADMIN_EMAIL")
	cfg.Admin.PasswordHash = getenv("ADMIN_PASSWORD_HASH")

	cfg.Sheets.CredentialsPath = getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.Sheets.SpreadsheetID = getenv("GOOGLE_SHEETS_SPREADSHEET_ID")

	if len(invalid) > 0 {
		return cfg, fmt.Errorf("invalid duration environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// RequireAdmin reports the admin variables that are missing
func (c Config) RequireAdmin() error {
	var missingVars []string

	if c.Admin.Email == "" {
		missingVars = append(missingVars, "ADMIN_EMAIL")
	}

	if c.Admin.PasswordHash == "" {
		missingVars = append(missingVars, "ADMIN_PASSWORD_HASH")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}
	return nil
}

// SheetsEnabled reports whether the Sheets export can be offered
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}
