package tools

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

type fakeBackend struct {
	mu         sync.Mutex
	jobQueries []url.Values
	jobs       []domain.Job
	jobsErr    error
	posts      []domain.BlogPost
	post       domain.BlogPost
	postErr    error
	contactErr error
	subscribed []string
}

func (f *fakeBackend) ListJobsValues(_ context.Context, v url.Values) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobQueries = append(f.jobQueries, v)
	return f.jobs, f.jobsErr
}

func (f *fakeBackend) FilterOptions(context.Context) (domain.FilterOptions, error) {
	return domain.FilterOptions{
		Categories: []string{domain.AllCategories, "Technology"},
		Locations:  []string{domain.AllLocations, "Remote"},
		JobTypes:   []string{domain.AllTypes, "Full-time"},
	}, nil
}

func (f *fakeBackend) FeaturedCompanies(context.Context) ([]domain.FeaturedCompany, error) {
	return []domain.FeaturedCompany{{Name: "Acme", Jobs: 4}}, nil
}

func (f *fakeBackend) ListPostsValues(context.Context, url.Values) ([]domain.BlogPost, error) {
	return f.posts, nil
}

func (f *fakeBackend) ListCategories(context.Context) ([]domain.BlogCategory, error) {
	return nil, errors.New("categories down")
}

func (f *fakeBackend) GetPost(context.Context, string) (domain.BlogPost, error) {
	return f.post, f.postErr
}

func (f *fakeBackend) GetContactInfo(context.Context) (domain.ContactInfo, error) {
	if f.contactErr != nil {
		return domain.ContactInfo{}, f.contactErr
	}
	return domain.ContactInfo{Address: "12 MG Road", Phone: "+91 80 1234", Email: "hello@silvertalent.in"}, nil
}

func (f *fakeBackend) Subscribe(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed = append(f.subscribed, email)
	return "", nil
}

type appendCall struct {
	rng  string
	rows [][]any
}

type fakeWriter struct {
	cleared  []string
	updated  []string
	appended []appendCall
}

func (w *fakeWriter) AppendValues(_ context.Context, _, rng string, values [][]any) (int, error) {
	w.appended = append(w.appended, appendCall{rng: rng, rows: values})
	return len(values), nil
}

func (w *fakeWriter) UpdateValues(_ context.Context, _, rng string, _ [][]any) error {
	w.updated = append(w.updated, rng)
	return nil
}

func (w *fakeWriter) ClearValues(_ context.Context, _, rng string) error {
	w.cleared = append(w.cleared, rng)
	return nil
}

var fixedNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func connect(t *testing.T, opts ...Option) *sdkmcp.ClientSession {
	t.Helper()

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "silver-talent-test", Version: "0.0.0"}, nil)
	Register(server, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)

	clientT, serverT := sdkmcp.NewInMemoryTransports()
	ctx := context.Background()

	ss, err := server.Connect(ctx, serverT, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})
	return cs
}

func call(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()

	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n"), res.IsError
}

func TestVacancySearch_omitsSentinelFilters(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{jobs: []domain.Job{
		{ID: "j1", Title: "React Developer", Company: "Acme", Location: "Remote", Type: "Full-time", PostedDate: domain.NewTimestamp(fixedNow)},
		{ID: "j2", Title: "Frontend Lead", Company: "Globex", Location: "Pune", Type: "Contract"},
	}}
	cs := connect(t, WithVacancySearch(backend))

	text, isErr := call(t, cs, "vacancy_search", map[string]any{
		"query":    "React",
		"category": domain.AllCategories,
		"type":     "Full-time",
	})
	if isErr {
		t.Fatalf("unexpected error result: %s", text)
	}
	if !strings.Contains(text, "2 Jobs Available") || !strings.Contains(text, "React Developer at Acme") {
		t.Errorf("text = %q", text)
	}
	if !strings.Contains(text, "posted Just now") {
		t.Errorf("posted date not formatted relative to now: %q", text)
	}

	if len(backend.jobQueries) != 1 {
		t.Fatalf("requests = %d, want 1", len(backend.jobQueries))
	}
	if got := backend.jobQueries[0].Encode(); got != "q=React&type=Full-time" {
		t.Errorf("query = %q", got)
	}
}

func TestVacancySearch_errorBecomesMessage(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{jobsErr: &silvertalent.HTTPError{Status: http.StatusBadRequest, Label: "jobs", Message: "Invalid category"}}
	cs := connect(t, WithVacancySearch(backend))

	text, isErr := call(t, cs, "vacancy_search", map[string]any{"category": "Nope"})
	if !isErr || text != "Invalid category" {
		t.Errorf("got (%q, %v), want the server message as an error result", text, isErr)
	}
}

func TestVacancySearch_emptyResult(t *testing.T) {
	t.Parallel()

	cs := connect(t, WithVacancySearch(&fakeBackend{}))
	text, isErr := call(t, cs, "vacancy_search", nil)
	if isErr || !strings.Contains(text, "No jobs match your search") {
		t.Errorf("got (%q, %v)", text, isErr)
	}
}

func TestFilterOptionsAndFeatured(t *testing.T) {
	t.Parallel()

	cs := connect(t, WithVacancySearch(&fakeBackend{}))

	text, _ := call(t, cs, "filter_options", nil)
	if !strings.Contains(text, "Technology") || !strings.Contains(text, "Full-time") {
		t.Errorf("filter_options = %q", text)
	}
	text, _ = call(t, cs, "featured_companies", nil)
	if text != "Acme: 4 open jobs" {
		t.Errorf("featured_companies = %q", text)
	}
}

func TestBlog_searchSurvivesCategoryFailure(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{posts: []domain.BlogPost{{ID: "p1", Slug: "interview-tips", Title: "Interview tips"}}}
	cs := connect(t, WithBlog(backend))

	text, isErr := call(t, cs, "blog_search", map[string]any{"search": "interview"})
	if isErr || !strings.Contains(text, "Interview tips [interview-tips] N/A") {
		t.Errorf("got (%q, %v)", text, isErr)
	}
}

func TestBlogPost(t *testing.T) {
	t.Parallel()

	views := 42
	backend := &fakeBackend{post: domain.BlogPost{Title: "Interview tips", ReadTime: "5 min read", Views: &views, Content: []string{"Prepare.", "Practice."}}}
	cs := connect(t, WithBlog(backend))

	text, isErr := call(t, cs, "blog_post", map[string]any{"slug": "interview-tips"})
	if isErr || !strings.Contains(text, "42 views") || !strings.Contains(text, "Prepare.\n\nPractice.") {
		t.Errorf("got (%q, %v)", text, isErr)
	}

	if text, isErr := call(t, cs, "blog_post", map[string]any{"slug": " "}); !isErr || !strings.Contains(text, "slug") {
		t.Errorf("blank slug = (%q, %v)", text, isErr)
	}
	if text, isErr := call(t, cs, "blog_post", map[string]any{}); !isErr || text != "slug: Article slug is required." {
		t.Errorf("missing slug = (%q, %v)", text, isErr)
	}

	backend.postErr = silvertalent.ErrInvalidSlug
	if text, isErr := call(t, cs, "blog_post", map[string]any{"slug": "../contact-info"}); !isErr || !strings.Contains(text, "single path segment") {
		t.Errorf("nested slug = (%q, %v)", text, isErr)
	}

	backend.postErr = &silvertalent.HTTPError{Status: http.StatusNotFound, Label: "blog post", Message: "Post not found"}
	if text, isErr := call(t, cs, "blog_post", map[string]any{"slug": "gone"}); !isErr || text != "Post not found" {
		t.Errorf("missing post = (%q, %v)", text, isErr)
	}
}

func TestContactInfo_degradesToUnavailable(t *testing.T) {
	t.Parallel()

	cs := connect(t, WithContact(&fakeBackend{contactErr: &silvertalent.NetworkError{Op: "contact info", Err: errors.New("refused")}}))

	text, isErr := call(t, cs, "contact_info", nil)
	if isErr {
		t.Fatalf("contact_info should degrade, got error %q", text)
	}
	if !strings.Contains(text, "Address: N/A") || !strings.Contains(text, "check your connection") {
		t.Errorf("text = %q", text)
	}
}

func TestSubscribe_validatesBeforeCalling(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	cs := connect(t, WithContact(backend))

	text, isErr := call(t, cs, "subscribe", map[string]any{"email": "not-an-email"})
	if !isErr || !strings.Contains(text, "Please enter a valid email address.") {
		t.Errorf("invalid email = (%q, %v)", text, isErr)
	}
	if len(backend.subscribed) != 0 {
		t.Errorf("backend called with %v", backend.subscribed)
	}

	text, isErr = call(t, cs, "subscribe", map[string]any{})
	if !isErr || text != "email: Please enter a valid email address." {
		t.Errorf("missing email = (%q, %v)", text, isErr)
	}

	text, isErr = call(t, cs, "subscribe", map[string]any{"email": "jane@example.com"})
	if isErr || text != "Successfully subscribed for job alerts!" {
		t.Errorf("valid email = (%q, %v)", text, isErr)
	}
}

func TestContactEnquiry(t *testing.T) {
	t.Parallel()

	cs := connect(t, WithContact(&fakeBackend{}))

	text, isErr := call(t, cs, "contact_enquiry", map[string]any{"name": "Jane", "email": "jane@x", "phone": "12"})
	if !isErr || !strings.Contains(text, "phone") || !strings.Contains(text, "message") {
		t.Errorf("invalid enquiry = (%q, %v)", text, isErr)
	}

	text, isErr = call(t, cs, "contact_enquiry", map[string]any{"name": "Jane"})
	if !isErr {
		t.Fatalf("partial enquiry accepted: %q", text)
	}
	for _, field := range []string{"email:", "phone:", "message:"} {
		if !strings.Contains(text, field) {
			t.Errorf("partial enquiry %q does not report %s", text, field)
		}
	}
	if strings.Contains(text, "name:") {
		t.Errorf("partial enquiry reports the filled name: %q", text)
	}

	text, isErr = call(t, cs, "contact_enquiry", map[string]any{
		"name": "Jane", "email": "jane@example.com", "country": "UK", "phone": "7700900123", "message": "Hiring help",
	})
	if isErr || !strings.Contains(text, "Thank you") {
		t.Errorf("valid enquiry = (%q, %v)", text, isErr)
	}
}

func TestSheetsExport_replaceWritesHeaderThenRows(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{jobs: []domain.Job{{ID: "j1", Title: "Go Developer", PostedDate: domain.NewTimestamp(fixedNow)}}}
	writer := &fakeWriter{}
	cs := connect(t, WithSheetsExport(backend, writer, "sheet-1"))

	text, isErr := call(t, cs, "sheets_export", map[string]any{"query": "Go", "tab": "Jobs", "replace": true})
	if isErr || text != "exported 1 job(s) to Jobs" {
		t.Fatalf("got (%q, %v)", text, isErr)
	}
	if len(writer.cleared) != 1 || writer.cleared[0] != "Jobs!A2:Z" {
		t.Errorf("cleared = %v", writer.cleared)
	}
	if len(writer.updated) != 1 || writer.updated[0] != "Jobs!A1" {
		t.Errorf("header writes = %v", writer.updated)
	}
	if len(writer.appended) != 1 {
		t.Fatalf("appends = %d", len(writer.appended))
	}
	row := writer.appended[0].rows[0]
	if row[0] != "Go Developer" || row[6] != "2025-03-20" || row[7] != "j1" {
		t.Errorf("row = %v", row)
	}
}

func TestSheetsExport_unconfigured(t *testing.T) {
	t.Parallel()

	cs := connect(t, WithSheetsExport(&fakeBackend{}, nil, ""))
	text, isErr := call(t, cs, "sheets_export", nil)
	if !isErr || !strings.Contains(text, "not configured") {
		t.Errorf("got (%q, %v)", text, isErr)
	}
}

func TestJobRows_blankDate(t *testing.T) {
	t.Parallel()

	rows := JobRows([]domain.Job{{Title: "Designer"}})
	if len(rows) != 1 || len(rows[0]) != len(SheetHeader) || rows[0][6] != "" {
		t.Errorf("rows = %v", rows)
	}
}
