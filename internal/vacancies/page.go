// Package vacancies wires the list primitive to the jobs endpoints.
package vacancies

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// Filter keys, matching the /jobs query parameters
const (
	TextKey     = "q"
	CategoryKey = "category"
	LocationKey = "location"
	TypeKey     = "type"
)

// Selects lists the vacancy filters in display order
var Selects = []listing.SelectSpec{
	{Key: CategoryKey, Sentinel: domain.AllCategories},
	{Key: LocationKey, Sentinel: domain.AllLocations},
	{Key: TypeKey, Sentinel: domain.AllTypes},
}

// Sentinels of the vacancy filters
var Sentinels = listing.Sentinels{
	CategoryKey: domain.AllCategories,
	LocationKey: domain.AllLocations,
	TypeKey:     domain.AllTypes,
}

// Messages for failures the backend does not explain
const (
	JobsFallback      = "Failed to load jobs."
	CompaniesFallback = "Could not load featured companies."
	EmptyMessage      = "No jobs match your search. Try different keywords or filters."
)

// Backend is the part of the REST client the vacancies page uses
type Backend interface {
	ListJobsValues(ctx context.Context, values url.Values) ([]domain.Job, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	FeaturedCompanies(ctx context.Context) ([]domain.FeaturedCompany, error)
	Subscribe(ctx context.Context, email string) (string, error)
}

var _ Backend = (*silvertalent.Client)(nil)

// Companies is the featured companies block, loaded once per mount
type Companies struct {
	Status  listing.Status
	Items   []domain.FeaturedCompany
	Message string
}

// Page is one mounted vacancies page
type Page struct {
	backend Backend
	logger  *logging.Logger

	Filters *listing.FilterState
	Jobs    *listing.Orchestrator[domain.Job]
	Options *listing.OptionSource

	mu        sync.Mutex
	companies Companies
	shown     []domain.Job
}

// NewPage builds an unmounted page. opts tune the jobs orchestrator.
func NewPage(backend Backend, logger *logging.Logger, opts ...listing.Option) (*Page, error) {
	if backend == nil {
		return nil, fmt.Errorf("vacancies: backend is required")
	}
	logger = logging.OrNop(logger).Component("vacancies")

	p := &Page{backend: backend, logger: logger}

	base := []listing.Option{
		listing.WithLogger(logger),
		listing.WithName("vacancies.jobs"),
		listing.WithFallbackMessage(JobsFallback),
	}
	jobs, err := listing.NewOrchestrator(p.fetchJobs, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("vacancies: %w", err)
	}
	jobs.Subscribe(p.track)
	p.Jobs = jobs

	options, err := listing.NewOptionSource(p.loadOptions, Selects, logger)
	if err != nil {
		return nil, fmt.Errorf("vacancies: %w", err)
	}
	p.Options = options
	p.Filters = listing.NewFilterState(Sentinels, jobs.OnQueryChange)
	p.companies = Companies{Status: listing.StatusIdle}

	return p, nil
}

// Mount starts the three independent loads: filter options, the unfiltered
// job list and featured companies. A failure in one never blocks the others.
func (p *Page) Mount(ctx context.Context) error {
	p.Jobs.Search(p.Filters.Query())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// failure leaves the selects disabled, free text keeps working
		_ = p.Options.Load(gctx)
		return nil
	})
	g.Go(func() error {
		p.loadCompanies(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// SetSearch edits the free text; the request follows after the quiet period
func (p *Page) SetSearch(text string) {
	p.Filters.SetFreeText(text)
}

// SetFilter selects a value for one filter
func (p *Page) SetFilter(key, value string) {
	p.Filters.SetFilter(key, value)
}

// ApplyPopular puts a popular search term in the search box
func (p *Page) ApplyPopular(term string) {
	p.Filters.SetFreeText(term)
}

// Clear resets every filter, issuing a single refetch
func (p *Page) Clear() {
	p.Filters.Clear()
}

// SearchNow issues the current query without waiting for the quiet period
func (p *Page) SearchNow() {
	p.Jobs.Search(p.Filters.Query())
}

// Retry re-issues the last query
func (p *Page) Retry() {
	p.Jobs.Retry()
}

// View renders the job list
func (p *Page) View() listing.View[domain.Job] {
	return listing.RenderWith(p.Jobs.State(), listing.RenderOptions{
		Placeholders: 3,
		EmptyMessage: EmptyMessage,
	})
}

// CountLabel is the hero badge text. The previous list stays counted while a
// refetch is in flight.
func (p *Page) CountLabel() string {
	loading := p.Jobs.State().Loading()

	p.mu.Lock()
	n := len(p.shown)
	p.mu.Unlock()

	if loading && n == 0 {
		return "Counting jobs..."
	}
	return CountText(n)
}

// Companies returns the featured companies block
func (p *Page) Companies() Companies {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.companies
	c.Items = append([]domain.FeaturedCompany(nil), c.Items...)
	return c
}

// Close aborts outstanding requests
func (p *Page) Close() {
	p.Jobs.Close()
}

func (p *Page) fetchJobs(ctx context.Context, q listing.ListQuery) ([]domain.Job, error) {
	return p.backend.ListJobsValues(ctx, Params(q))
}

// Query builds a vacancies query. An empty filter stays at its sentinel.
func Query(text, category, location, jobType string) listing.ListQuery {
	q := listing.DefaultQuery(Sentinels)
	q.FreeText = text
	for k, v := range map[string]string{CategoryKey: category, LocationKey: location, TypeKey: jobType} {
		if v != "" {
			q.Filters[k] = v
		}
	}
	return q
}

// Params is the /jobs query string of q
func Params(q listing.ListQuery) url.Values {
	return q.Params(TextKey, Sentinels)
}

// CountText is the badge for n listed jobs
func CountText(n int) string {
	return fmt.Sprintf("%d Jobs Available", n)
}

func (p *Page) loadOptions(ctx context.Context) (listing.OptionSet, error) {
	opts, err := p.backend.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}
	return listing.OptionSet{
		CategoryKey: opts.Categories,
		LocationKey: opts.Locations,
		TypeKey:     opts.JobTypes,
	}, nil
}

func (p *Page) loadCompanies(ctx context.Context) {
	p.mu.Lock()
	p.companies = Companies{Status: listing.StatusLoading}
	p.mu.Unlock()

	items, err := p.backend.FeaturedCompanies(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Warn("featured companies unavailable", "err", err)
		p.companies = Companies{Status: listing.StatusError, Message: listing.MessageOf(err, CompaniesFallback)}
		return
	}
	if items == nil {
		items = []domain.FeaturedCompany{}
	}
	p.companies = Companies{Status: listing.StatusSuccess, Items: items}
}

// track keeps the last displayed list for the count badge
func (p *Page) track(s listing.FetchState[domain.Job]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch s.Status {
	case listing.StatusSuccess:
		p.shown = s.Items
	case listing.StatusError:
		p.shown = nil
	}
}
