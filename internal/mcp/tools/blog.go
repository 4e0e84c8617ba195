package tools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/blog"
	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// PostBackend is the part of the REST client the blog tools use
type PostBackend interface {
	ListPostsValues(ctx context.Context, values url.Values) ([]domain.BlogPost, error)
	ListCategories(ctx context.Context) ([]domain.BlogCategory, error)
	GetPost(ctx context.Context, slug string) (domain.BlogPost, error)
}

// BlogSearchParams defines the arguments for the blog_search tool
type BlogSearchParams struct {
	Search   string `json:"search,omitempty" jsonschema:"Free text matched against title, excerpt and tags"`
	Category string `json:"category,omitempty" jsonschema:"Category slug; empty or all means every category"`
}

// PostSummary is one listed article
type PostSummary struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt,omitempty"`
	Category  string   `json:"category,omitempty"`
	Published string   `json:"published"`
	ReadTime  string   `json:"read_time,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// BlogSearchResult is what blog_search returns
type BlogSearchResult struct {
	Posts      []PostSummary `json:"posts"`
	Categories []string      `json:"categories,omitempty" jsonschema:"Slugs accepted by the category argument"`
}

// BlogPostParams defines the arguments for the blog_post tool
type BlogPostParams struct {
	Slug string `json:"slug,omitempty" jsonschema:"Article slug from blog_search"`
}

type blogTools struct {
	reg     *registry
	backend PostBackend
}

// WithBlog registers blog_search and blog_post
func WithBlog(backend PostBackend) Option {
	return func(reg *registry) {
		t := blogTools{reg: reg, backend: backend}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "blog_search",
			Description: "Search Silver Talent career blog articles by text and category",
		}, t.search)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "blog_post",
			Description: "Read one blog article by slug; reading counts a view",
		}, t.post)
	}
}

func (t blogTools) search(ctx context.Context, _ *sdkmcp.CallToolRequest, params *BlogSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &BlogSearchParams{}
	}

	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	values := blog.Params(blog.Query(params.Search, params.Category))
	posts, err := t.backend.ListPostsValues(ctx, values)
	if err != nil {
		t.reg.logger.Warn("blog_search failed", "query", values.Encode(), "err", err)
		return errorResult(listing.MessageOf(err, blog.PostsFallback)), nil, nil
	}

	result := BlogSearchResult{Posts: make([]PostSummary, 0, len(posts))}

	// categories only help the caller refine; failure is not fatal
	if categories, err := t.backend.ListCategories(ctx); err != nil {
		t.reg.logger.Warn("blog categories unavailable", "err", err)
	} else {
		for _, c := range categories {
			result.Categories = append(result.Categories, c.Slug)
		}
	}

	for _, p := range posts {
		result.Posts = append(result.Posts, PostSummary{
			ID:        p.ID,
			Slug:      p.Slug,
			Title:     p.Title,
			Excerpt:   p.Excerpt,
			Category:  p.Category.Slug,
			Published: blog.FormatPublished(p.PublishDate.Time),
			ReadTime:  p.ReadTime,
			Tags:      p.Tags,
		})
	}

	if len(posts) == 0 {
		return textResult(blog.EmptyMessage), result, nil
	}

	lines := make([]string, 0, len(result.Posts))
	for _, p := range result.Posts {
		lines = append(lines, fmt.Sprintf("- %s [%s] %s", p.Title, p.Slug, p.Published))
	}
	return textResult(strings.Join(lines, "\n")), result, nil
}

var (
	errSlugRequired = listing.ValidationError{Field: "slug", Reason: "Article slug is required."}
	errSlugInvalid  = listing.ValidationError{Field: "slug", Reason: "Article slug must be a single path segment."}
)

func (t blogTools) post(ctx context.Context, _ *sdkmcp.CallToolRequest, params *BlogPostParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || strings.TrimSpace(params.Slug) == "" {
		return errorResult(errSlugRequired.Error()), nil, nil
	}

	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	post, err := t.backend.GetPost(ctx, params.Slug)
	if errors.Is(err, silvertalent.ErrInvalidSlug) {
		return errorResult(errSlugInvalid.Error()), nil, nil
	}
	if err != nil {
		t.reg.logger.Warn("blog_post failed", "slug", params.Slug, "err", err)
		return errorResult(blog.OpenMessage(err)), nil, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s | %s", post.Title, blog.FormatPublished(post.PublishDate.Time), post.ReadTime)
	if post.Views != nil {
		fmt.Fprintf(&b, " | %d views", *post.Views)
	}
	for _, para := range post.Content {
		b.WriteString("\n\n")
		b.WriteString(para)
	}
	return textResult(b.String()), post, nil
}
