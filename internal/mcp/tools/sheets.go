package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
	"github.com/honeycarbs/silver-talent/pkg/sheets"
)

// SheetsWriter writes value ranges to a spreadsheet
type SheetsWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]any) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

var _ SheetsWriter = (*sheets.Client)(nil)

// SheetHeader is written as the first row when a tab is replaced
var SheetHeader = []any{"Title", "Company", "Location", "Type", "Salary", "Category", "Posted", "Job ID"}

const sheetsUnconfigured = "Google Sheets export is not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)."

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Query         string `json:"query,omitempty" jsonschema:"Free text, as in vacancy_search"`
	Category      string `json:"category,omitempty" jsonschema:"Category filter, as in vacancy_search"`
	Location      string `json:"location,omitempty" jsonschema:"Location filter, as in vacancy_search"`
	Type          string `json:"type,omitempty" jsonschema:"Job type filter, as in vacancy_search"`
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"Google Sheets document ID; defaults to the configured sheet"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name (default Sheet1)"`
	Replace       bool   `json:"replace,omitempty" jsonschema:"Clear the tab and rewrite the header before writing"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	RunID         string    `json:"run_id"`
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	Mode          string    `json:"mode" jsonschema:"append or replace"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

type sheetsExportTool struct {
	reg           *registry
	jobs          JobBackend
	writer        SheetsWriter
	spreadsheetID string
}

// WithSheetsExport registers sheets_export. A nil writer registers a tool that
// reports the missing configuration.
func WithSheetsExport(jobs JobBackend, writer SheetsWriter, spreadsheetID string) Option {
	return func(reg *registry) {
		t := sheetsExportTool{reg: reg, jobs: jobs, writer: writer, spreadsheetID: spreadsheetID}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Run a vacancy search and write the matching jobs to Google Sheets",
		}, t.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &SheetsExportParams{}
	}
	if t.writer == nil {
		return errorResult(sheetsUnconfigured), nil, nil
	}

	result := SheetsExportResult{
		RunID:         uuid.NewString(),
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		Mode:          "append",
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = t.spreadsheetID
	}
	if result.SpreadsheetID == "" {
		return errorResult(listing.ValidationError{Field: "spreadsheet_id", Reason: "Spreadsheet ID is required."}.Error()), nil, nil
	}
	if result.Tab == "" {
		result.Tab = sheets.DefaultTab
	}
	if params.Replace {
		result.Mode = "replace"
	}

	logger := t.reg.logger.With("run_id", result.RunID, "spreadsheet_id", result.SpreadsheetID, "tab", result.Tab)

	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	jobs, err := t.jobs.ListJobsValues(ctx, vacancies.Params(vacancies.Query(params.Query, params.Category, params.Location, params.Type)))
	if err != nil {
		logger.Warn("sheets_export search failed", "err", err)
		return errorResult(listing.MessageOf(err, vacancies.JobsFallback)), nil, nil
	}

	if params.Replace {
		if err := t.writer.ClearValues(ctx, result.SpreadsheetID, sheets.ClearRange(result.Tab)); err != nil {
			logger.Warn("sheets_export clear failed", "err", err)
			return errorResult("Could not clear the sheet."), nil, nil
		}
		if err := t.writer.UpdateValues(ctx, result.SpreadsheetID, sheets.TabRange(result.Tab), [][]any{SheetHeader}); err != nil {
			logger.Warn("sheets_export header failed", "err", err)
			return errorResult("Could not write the sheet header."), nil, nil
		}
	}

	result.CompletedAt = t.reg.now().UTC()
	if len(jobs) == 0 {
		result.Message = "no jobs matched; nothing exported"
		return textResult(result.Message), result, nil
	}

	written, err := t.writer.AppendValues(ctx, result.SpreadsheetID, sheets.TabRange(result.Tab), JobRows(jobs))
	if err != nil {
		logger.Warn("sheets_export append failed", "err", err)
		return errorResult("Could not write jobs to the sheet."), nil, nil
	}

	result.WrittenRows = written
	result.Message = fmt.Sprintf("exported %d job(s) to %s", written, result.Tab)
	logger.Info("sheets export completed", "rows", written)
	return textResult(result.Message), result, nil
}

// JobRows converts jobs to sheet rows in SheetHeader order
func JobRows(jobs []domain.Job) [][]any {
	values := make([][]any, len(jobs))
	for i, j := range jobs {
		posted := ""
		if !j.PostedDate.IsZero() {
			posted = j.PostedDate.Format(time.DateOnly)
		}
		values[i] = []any{
			j.Title,
			j.Company,
			j.Location,
			j.Type,
			j.Salary,
			j.Category,
			posted,
			strings.TrimSpace(j.ID),
		}
	}
	return values
}
