package tools

import "github.com/honeycarbs/silver-talent/pkg/silvertalent"

// Backend is every site endpoint the tools read from
type Backend interface {
	JobBackend
	PostBackend
	ContactBackend
}

var _ Backend = (*silvertalent.Client)(nil)

// All returns the options that install every site tool. writer may be nil
// when no spreadsheet is configured.
func All(backend Backend, writer SheetsWriter, spreadsheetID string) []Option {
	return []Option{
		WithVacancySearch(backend),
		WithBlog(backend),
		WithContact(backend),
		WithSheetsExport(backend, writer, spreadsheetID),
	}
}
