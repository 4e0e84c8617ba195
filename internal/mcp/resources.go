package mcp

import (
	"context"

	"github.com/honeycarbs/silver-talent/internal/config"
	"github.com/honeycarbs/silver-talent/internal/mcp/tools"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	sheetsclient "github.com/honeycarbs/silver-talent/pkg/sheets"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// Resources are the clients the tools run against
type Resources struct {
	Site   *silvertalent.Client
	Sheets *sheetsclient.Client // nil when no spreadsheet is configured
}

// LoadResources builds the clients for cfg. A Sheets failure only disables
// the export tool.
func LoadResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	logger = logging.OrNop(logger)

	res, err := InitializeResources(ctx, cfg)
	if err == nil {
		logger.Info("Silver Talent client initialized", "base_url", cfg.API.BaseURL)
		if res.Sheets != nil {
			logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.Sheets.SpreadsheetID)
		}
		return res, nil
	}

	logger.Warn("failed to initialize resources, continuing without Sheets", "err", err)
	site, siteErr := provideSiteClient(cfg)
	if siteErr != nil {
		return nil, siteErr
	}
	return &Resources{Site: site}, nil
}

func provideSiteConfig(cfg config.Config) silvertalent.Config {
	return silvertalent.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout,
	}
}

func provideSiteClient(cfg config.Config) (*silvertalent.Client, error) {
	return silvertalent.NewClient(provideSiteConfig(cfg))
}

// provideSheetsClient returns nil without error when Sheets is not configured
func provideSheetsClient(ctx context.Context, cfg config.Config) (*sheetsclient.Client, error) {
	if !cfg.SheetsEnabled() {
		return nil, nil
	}
	return sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
}

func toolOptions(cfg config.Config, res *Resources, logger *logging.Logger) []tools.Option {
	opts := []tools.Option{
		tools.WithLogger(logger),
		tools.WithTimeout(cfg.API.RequestTimeout),
	}
	if res == nil || res.Site == nil {
		logger.Warn("no Silver Talent client, MCP server starts without tools")
		return opts
	}

	// a nil *sheets.Client must not become a non-nil interface
	var writer tools.SheetsWriter
	if res.Sheets != nil {
		writer = res.Sheets
	}
	return append(opts, tools.All(res.Site, writer, cfg.Sheets.SpreadsheetID)...)
}
