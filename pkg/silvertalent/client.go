package silvertalent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/honeycarbs/silver-talent/internal/domain"
)

const (
	// DefaultBaseURL is the production backend
	DefaultBaseURL = "https://silver-talent-backend.onrender.com/api"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4096
)

// NewClient instantiates a Silver Talent API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("silvertalent: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "silver-talent-go/0.1"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// ListJobs queries GET /jobs with only the non-empty filters
func (c *Client) ListJobs(ctx context.Context, params JobParams) ([]domain.Job, error) {
	values := url.Values{}
	setIf(values, "q", strings.TrimSpace(params.Query))
	setIf(values, "category", params.Category)
	setIf(values, "location", params.Location)
	setIf(values, "type", params.Type)

	return c.listJobs(ctx, values)
}

// ListJobsValues queries GET /jobs with pre-built query values
func (c *Client) ListJobsValues(ctx context.Context, values url.Values) ([]domain.Job, error) {
	return c.listJobs(ctx, values)
}

func (c *Client) listJobs(ctx context.Context, values url.Values) ([]domain.Job, error) {
	jobs := make([]domain.Job, 0)
	if err := c.get(ctx, "Jobs", values, &jobs, "jobs"); err != nil {
		return nil, err
	}
	return jobs, nil
}

// FilterOptions fetches GET /filter-options
func (c *Client) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	var opts domain.FilterOptions
	if err := c.get(ctx, "Filter options", nil, &opts, "filter-options"); err != nil {
		return domain.FilterOptions{}, err
	}
	return opts, nil
}

// FeaturedCompanies fetches GET /featured-companies
func (c *Client) FeaturedCompanies(ctx context.Context) ([]domain.FeaturedCompany, error) {
	companies := make([]domain.FeaturedCompany, 0)
	if err := c.get(ctx, "Featured companies", nil, &companies, "featured-companies"); err != nil {
		return nil, err
	}
	return companies, nil
}

// ListPosts queries GET /blog/posts with only the non-empty filters
func (c *Client) ListPosts(ctx context.Context, params PostParams) ([]domain.BlogPost, error) {
	values := url.Values{}
	setIf(values, "search", strings.TrimSpace(params.Search))
	setIf(values, "category", params.Category)
	setIf(values, "tag", params.Tag)

	return c.ListPostsValues(ctx, values)
}

// ListPostsValues queries GET /blog/posts with pre-built query values
func (c *Client) ListPostsValues(ctx context.Context, values url.Values) ([]domain.BlogPost, error) {
	posts := make([]domain.BlogPost, 0)
	if err := c.get(ctx, "Posts", values, &posts, "blog", "posts"); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches a full article. The backend counts this as a view.
func (c *Client) GetPost(ctx context.Context, slug string) (domain.BlogPost, error) {
	if slug == "" {
		return domain.BlogPost{}, fmt.Errorf("silvertalent: slug is required")
	}
	if slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return domain.BlogPost{}, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	var post domain.BlogPost
	if err := c.get(ctx, "Post", nil, &post, "blog", "posts", slug); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

// ListCategories fetches GET /blog/categories
func (c *Client) ListCategories(ctx context.Context) ([]domain.BlogCategory, error) {
	categories := make([]domain.BlogCategory, 0)
	if err := c.get(ctx, "Blog categories", nil, &categories, "blog", "categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetContactInfo fetches GET /contact-info
func (c *Client) GetContactInfo(ctx context.Context) (domain.ContactInfo, error) {
	var info domain.ContactInfo
	if err := c.get(ctx, "Contact info", nil, &info, "contact-info"); err != nil {
		return domain.ContactInfo{}, err
	}
	return info, nil
}

// Subscribe registers an email for job alerts
func (c *Client) Subscribe(ctx context.Context, email string) (string, error) {
	var res MutationResult[struct{}]
	body := map[string]string{"email": email}
	if err := c.sendJSON(ctx, http.MethodPost, "Subscribe", body, &res, "subscribe"); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) get(ctx context.Context, label string, values url.Values, out any, segments ...string) error {
	u, err := c.buildURL(values, segments...)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("silvertalent: build request: %w", err)
	}
	return c.do(req, label, out)
}

func (c *Client) sendJSON(ctx context.Context, method, label string, payload, out any, segments ...string) error {
	u, err := c.buildURL(nil, segments...)
	if err != nil {
		return err
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("silvertalent: encode %s body: %w", label, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("silvertalent: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, label, out)
}

func (c *Client) do(req *http.Request, label string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp, label)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("silvertalent: decode %s response: %w", label, err)
	}
	return nil
}

func decodeError(resp *http.Response, label string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	httpErr := &HTTPError{Status: resp.StatusCode, Label: label}

	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		httpErr.Message = strings.TrimSpace(payload.Message)
	}
	return httpErr
}

func (c *Client) buildURL(values url.Values, segments ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("silvertalent: parse base url: %w", err)
	}

	// Each segment is escaped on its own so a value can never add path levels
	p := strings.TrimSuffix(u.Path, "/")
	raw := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, seg := range segments {
		p += "/" + seg
		raw += "/" + url.PathEscape(seg)
	}
	u.Path, u.RawPath = p, raw

	if len(values) > 0 {
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
