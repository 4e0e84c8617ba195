package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
)

const defaultJobLimit = 20

// JobBackend is the part of the REST client the vacancy tools use
type JobBackend interface {
	ListJobsValues(ctx context.Context, values url.Values) ([]domain.Job, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	FeaturedCompanies(ctx context.Context) ([]domain.FeaturedCompany, error)
}

// VacancySearchParams defines the arguments for the vacancy_search tool
type VacancySearchParams struct {
	Query    string `json:"query,omitempty" jsonschema:"Free text matched against title, company and skills"`
	Category string `json:"category,omitempty" jsonschema:"Category from filter_options; empty or All Categories means any"`
	Location string `json:"location,omitempty" jsonschema:"Location from filter_options; empty or All Locations means any"`
	Type     string `json:"type,omitempty" jsonschema:"Job type from filter_options; empty or All Types means any"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of jobs returned (default 20)"`
}

// JobSummary is one listed vacancy
type JobSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Type     string   `json:"type"`
	Salary   string   `json:"salary,omitempty"`
	Category string   `json:"category,omitempty"`
	Posted   string   `json:"posted"`
	Skills   []string `json:"skills,omitempty"`
}

// VacancySearchResult is what vacancy_search returns
type VacancySearchResult struct {
	Label string       `json:"label"`
	Total int          `json:"total"`
	Jobs  []JobSummary `json:"jobs"`
	Query string       `json:"query" jsonschema:"Query string sent to GET /jobs"`
}

type vacancyTools struct {
	reg     *registry
	backend JobBackend
}

// WithVacancySearch registers vacancy_search, filter_options and featured_companies
func WithVacancySearch(backend JobBackend) Option {
	return func(reg *registry) {
		t := vacancyTools{reg: reg, backend: backend}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "vacancy_search",
			Description: "Search Silver Talent job vacancies by keyword, category, location and job type",
		}, t.search)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "filter_options",
			Description: "List the categories, locations and job types accepted by vacancy_search",
		}, t.filterOptions)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "featured_companies",
			Description: "List the hiring companies featured on the vacancies page",
		}, t.featured)
	}
}

func (t vacancyTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params *VacancySearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &VacancySearchParams{}
	}

	values := vacancies.Params(vacancies.Query(params.Query, params.Category, params.Location, params.Type))
	t.reg.logger.Debug("vacancy_search called", "query", values.Encode())

	jobs, err := t.list(ctx, values)
	if err != nil {
		t.reg.logger.Warn("vacancy_search failed", "err", err)
		return errorResult(listing.MessageOf(err, vacancies.JobsFallback)), nil, nil
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJobLimit
	}

	result := VacancySearchResult{
		Label: vacancies.CountText(len(jobs)),
		Total: len(jobs),
		Jobs:  make([]JobSummary, 0, min(limit, len(jobs))),
		Query: values.Encode(),
	}
	now := t.reg.now()
	for _, j := range jobs[:min(limit, len(jobs))] {
		result.Jobs = append(result.Jobs, JobSummary{
			ID:       j.ID,
			Title:    j.Title,
			Company:  j.Company,
			Location: j.Location,
			Type:     j.Type,
			Salary:   j.Salary,
			Category: j.Category,
			Posted:   vacancies.FormatPosted(j.PostedDate.Time, now),
			Skills:   j.Skills,
		})
	}

	if len(jobs) == 0 {
		return textResult(vacancies.EmptyMessage), result, nil
	}

	var b strings.Builder
	b.WriteString(result.Label)
	for _, j := range result.Jobs {
		fmt.Fprintf(&b, "\n- %s at %s (%s, %s) posted %s", j.Title, j.Company, j.Location, j.Type, j.Posted)
	}
	return textResult(b.String()), result, nil
}

func (t vacancyTools) list(ctx context.Context, values url.Values) ([]domain.Job, error) {
	ctx, cancel := t.reg.call(ctx)
	defer cancel()
	return t.backend.ListJobsValues(ctx, values)
}

func (t vacancyTools) filterOptions(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *struct{}) (*sdkmcp.CallToolResult, any, error) {
	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	opts, err := t.backend.FilterOptions(ctx)
	if err != nil {
		t.reg.logger.Warn("filter_options failed", "err", err)
		return errorResult(listing.MessageOf(err, "Failed to load filter options.")), nil, nil
	}

	msg := fmt.Sprintf("Categories: %s\nLocations: %s\nJob types: %s",
		strings.Join(opts.Categories, ", "),
		strings.Join(opts.Locations, ", "),
		strings.Join(opts.JobTypes, ", "),
	)
	return textResult(msg), opts, nil
}

// FeaturedCompaniesResult is what featured_companies returns
type FeaturedCompaniesResult struct {
	Companies []domain.FeaturedCompany `json:"companies"`
}

func (t vacancyTools) featured(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *struct{}) (*sdkmcp.CallToolResult, any, error) {
	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	companies, err := t.backend.FeaturedCompanies(ctx)
	if err != nil {
		t.reg.logger.Warn("featured_companies failed", "err", err)
		return errorResult(listing.MessageOf(err, vacancies.CompaniesFallback)), nil, nil
	}
	if companies == nil {
		companies = []domain.FeaturedCompany{}
	}

	lines := make([]string, 0, len(companies))
	for _, c := range companies {
		lines = append(lines, fmt.Sprintf("%s: %d open jobs", c.Name, c.Jobs))
	}
	return textResult(strings.Join(lines, "\n")), FeaturedCompaniesResult{Companies: companies}, nil
}
